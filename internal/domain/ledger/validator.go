package ledger

import (
	"strings"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

// References cliente y tipo de caja resueltos para un movimiento (nil si no existen).
type References struct {
	Client    *entity.Client
	CrateType *entity.CrateType
}

// Validate revisa un movimiento propuesto contra el saldo actual del par, sin modificar nada.
// currentBalance es el valor real vigente (antes de aplicar el movimiento).
//
// Orden de las reglas: cantidad, tipo, referencias, saldo, motivo.
func Validate(m *entity.Movement, currentBalance int, refs References) error {
	if m.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !entity.IsValidMovementType(m.Type) {
		return domain.ErrInvalidInput
	}
	if err := checkReferences(m, refs); err != nil {
		return err
	}

	switch m.Type {
	case entity.MovementTypeReturn, entity.MovementTypeDiscard:
		if m.Quantity > currentBalance {
			return &domain.InsufficientBalanceError{Available: currentBalance, Requested: m.Quantity}
		}
	}

	switch m.Type {
	case entity.MovementTypeDiscard, entity.MovementTypeAdjustment:
		if strings.TrimSpace(m.Reason) == "" {
			return domain.ErrMissingReason
		}
	}
	return nil
}

func checkReferences(m *entity.Movement, refs References) error {
	switch {
	case refs.Client == nil || refs.Client.ID != m.ClientID:
		return &domain.UnknownReferenceError{Entity: "cliente", ID: m.ClientID, Reason: "no encontrado"}
	case !refs.Client.Active:
		return &domain.UnknownReferenceError{Entity: "cliente", ID: m.ClientID, Reason: "inactivo"}
	case refs.CrateType == nil || refs.CrateType.ID != m.CrateTypeID:
		return &domain.UnknownReferenceError{Entity: "tipo de caja", ID: m.CrateTypeID, Reason: "no encontrado"}
	case !refs.CrateType.Active:
		return &domain.UnknownReferenceError{Entity: "tipo de caja", ID: m.CrateTypeID, Reason: "inactivo"}
	}
	return nil
}
