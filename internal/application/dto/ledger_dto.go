package dto

import (
	"encoding/json"
	"time"
)

// RegisterMovementRequest body para POST /api/movimientos.
// Cantidad acepta número o texto numérico; debe ser entero positivo.
type RegisterMovementRequest struct {
	ClienteID     string      `json:"cliente_id"`
	TipoCajaID    string      `json:"tipo_caja_id"`
	Cantidad      json.Number `json:"cantidad" swaggertype:"integer"`
	Fecha         string      `json:"fecha,omitempty"` // YYYY-MM-DD; vacío = hoy
	Hora          string      `json:"hora,omitempty"`  // HH:MM; vacío = ahora
	Tipo          string      `json:"tipo"`
	Motivo        string      `json:"motivo,omitempty"`
	Observaciones string      `json:"observaciones,omitempty"`
}

// MovementFilterQuery query string de GET /api/movimientos.
type MovementFilterQuery struct {
	Tipo       string `query:"tipo"`
	ClienteID  string `query:"cliente_id"`
	TipoCajaID string `query:"tipo_caja_id"`
	FechaDesde string `query:"fecha_desde"`
	FechaHasta string `query:"fecha_hasta"`
	Limit      int    `query:"limit"`
}

// MovementResponse movimiento unido con nombre de cliente y tipo de caja.
type MovementResponse struct {
	ID             string    `json:"id"`
	ClienteID      string    `json:"cliente_id"`
	ClienteNombre  string    `json:"cliente_nombre"`
	TipoCajaID     string    `json:"tipo_caja_id"`
	TipoCajaCodigo string    `json:"tipo_caja_codigo"`
	TipoCajaNombre string    `json:"tipo_caja_nombre"`
	Cantidad       int       `json:"cantidad"`
	Fecha          string    `json:"fecha"`
	Hora           string    `json:"hora"`
	Tipo           string    `json:"tipo"`
	Motivo         string    `json:"motivo,omitempty"`
	Observaciones  string    `json:"observaciones,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterMovementResponse movimiento registrado y saldo resultante del par.
type RegisterMovementResponse struct {
	Movimiento    MovementResponse `json:"movimiento"`
	SaldoAnterior int              `json:"saldo_anterior"`
	SaldoNuevo    int              `json:"saldo_nuevo"`
}

// BalanceResponse saldo unido con atributos de presentación.
type BalanceResponse struct {
	ClienteID      string    `json:"cliente_id"`
	ClienteNombre  string    `json:"cliente_nombre"`
	TipoCajaID     string    `json:"tipo_caja_id"`
	TipoCajaCodigo string    `json:"tipo_caja_codigo"`
	TipoCajaNombre string    `json:"tipo_caja_nombre"`
	TipoCajaColor  string    `json:"tipo_caja_color"`
	Cantidad       int       `json:"cantidad"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PairBalanceResponse saldo de un solo par.
type PairBalanceResponse struct {
	Cantidad int `json:"cantidad"`
}

// SummaryResponse resumen para el tablero.
type SummaryResponse struct {
	MovimientosPorTipo map[string]int     `json:"movimientos_por_tipo"`
	ClientesActivos    int                `json:"clientes_activos"`
	CajasPrestadas     int                `json:"cajas_prestadas"`
	CajasPorTipo       []CratesOnLoanDTO  `json:"cajas_por_tipo"`
	UltimosMovimientos []MovementResponse `json:"ultimos_movimientos"`
}

// CratesOnLoanDTO total en préstamo de un tipo de caja.
type CratesOnLoanDTO struct {
	TipoCajaID string `json:"tipo_caja_id"`
	Codigo     string `json:"codigo"`
	Nombre     string `json:"nombre"`
	Color      string `json:"color"`
	Cantidad   int    `json:"cantidad"`
}

// BalanceDriftDTO par cuyo saldo guardado difiere del recalculado desde el historial.
type BalanceDriftDTO struct {
	ClienteID  string `json:"cliente_id"`
	TipoCajaID string `json:"tipo_caja_id"`
	Guardado   int    `json:"guardado"`
	Calculado  int    `json:"calculado"`
}

// RebuildResponse resultado de POST /api/saldos/recalcular.
type RebuildResponse struct {
	Pares       int               `json:"pares"`
	Corregidos  []BalanceDriftDTO `json:"corregidos"`
	Movimientos int               `json:"movimientos"`
}
