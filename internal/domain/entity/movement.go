package entity

import (
	"time"
)

// Tipos de movimiento de cajas.
const (
	MovementTypeDelivery   = "entrega"    // entrega al cliente: suma
	MovementTypeReturn     = "devolucion" // devolución del cliente: resta
	MovementTypeDiscard    = "retiro"     // retiro por daño o pérdida: resta, requiere motivo
	MovementTypeAdjustment = "ajuste"     // ajuste a valor absoluto, requiere motivo
)

// Formatos de fecha y hora de un movimiento.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// MaxMovementResults tope de resultados de un listado de movimientos (no hay paginación).
const MaxMovementResults = 100

// MovementTypes devuelve los tipos válidos en orden de presentación.
func MovementTypes() []string {
	return []string{MovementTypeDelivery, MovementTypeReturn, MovementTypeDiscard, MovementTypeAdjustment}
}

// IsValidMovementType indica si t es uno de los cuatro tipos conocidos.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeDelivery, MovementTypeReturn, MovementTypeDiscard, MovementTypeAdjustment:
		return true
	}
	return false
}

// Movement evento inmutable que afecta el saldo de un cliente para un tipo de caja.
// Los movimientos solo se agregan; nunca se modifican ni eliminan.
type Movement struct {
	ID          string // ordenable cronológicamente por creación
	ClientID    string
	CrateTypeID string
	Quantity    int    // > 0; en ajuste es el valor absoluto objetivo
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Type        string
	Reason      string // obligatorio en retiro y ajuste
	Notes       string
	CreatedAt   time.Time
}

// Before ordena por (fecha, hora) y desempata por ID.
func (m *Movement) Before(o *Movement) bool {
	if m.Date != o.Date {
		return m.Date < o.Date
	}
	if m.Time != o.Time {
		return m.Time < o.Time
	}
	return m.ID < o.ID
}

// ValidDate indica si s tiene formato YYYY-MM-DD.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime indica si s tiene formato HH:MM (o HH:MM:SS).
func ValidTime(s string) bool {
	if _, err := time.Parse(TimeLayout, s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// MovementFilter filtros combinables para listar movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	Type        string
	ClientID    string
	CrateTypeID string
	DateFrom    string // inclusive
	DateTo      string // inclusive
	Limit       int    // 0 o > MaxMovementResults => MaxMovementResults
}

// EffectiveLimit devuelve el límite acotado a MaxMovementResults.
func (f MovementFilter) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > MaxMovementResults {
		return MaxMovementResults
	}
	return f.Limit
}

// Matches evalúa el filtro en memoria (adaptadores sin SQL).
func (f MovementFilter) Matches(m *Movement) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.ClientID != "" && m.ClientID != f.ClientID {
		return false
	}
	if f.CrateTypeID != "" && m.CrateTypeID != f.CrateTypeID {
		return false
	}
	if f.DateFrom != "" && m.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && m.Date > f.DateTo {
		return false
	}
	return true
}
