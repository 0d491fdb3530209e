package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/ledger"
)

func activeRefs() ledger.References {
	return ledger.References{
		Client:    &entity.Client{ID: "C1", Name: "Avícola Norte", Active: true},
		CrateType: &entity.CrateType{ID: "NEG", Code: "NEG", Name: "Negras", Active: true},
	}
}

func TestValidate_CantidadNoPositiva(t *testing.T) {
	for _, qty := range []int{0, -1, -50} {
		m := mov("m", entity.MovementTypeDelivery, qty, "2025-01-01", "10:00")
		err := ledger.Validate(m, 100, activeRefs())
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", qty)
	}
}

func TestValidate_TipoDesconocido(t *testing.T) {
	m := mov("m", "prestamo", 1, "2025-01-01", "10:00")
	assert.ErrorIs(t, ledger.Validate(m, 0, activeRefs()), domain.ErrInvalidInput)
}

func TestValidate_ReferenciasInexistentesOInactivas(t *testing.T) {
	m := mov("m", entity.MovementTypeDelivery, 1, "2025-01-01", "10:00")

	refs := activeRefs()
	refs.Client = nil
	assert.ErrorIs(t, ledger.Validate(m, 0, refs), domain.ErrUnknownReference)

	refs = activeRefs()
	refs.CrateType = nil
	assert.ErrorIs(t, ledger.Validate(m, 0, refs), domain.ErrUnknownReference)

	refs = activeRefs()
	refs.Client.Active = false
	err := ledger.Validate(m, 0, refs)
	var refErr *domain.UnknownReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "cliente", refErr.Entity)
	assert.Equal(t, "inactivo", refErr.Reason)

	refs = activeRefs()
	refs.CrateType.Active = false
	require.ErrorAs(t, ledger.Validate(m, 0, refs), &refErr)
	assert.Equal(t, "tipo de caja", refErr.Entity)
}

func TestValidate_EntregaSinTopeDeSaldo(t *testing.T) {
	m := mov("m", entity.MovementTypeDelivery, 1_000_000, "2025-01-01", "10:00")
	assert.NoError(t, ledger.Validate(m, 0, activeRefs()))
}

func TestValidate_DevolucionYRetiroRechazanSiSuperanSaldo(t *testing.T) {
	for _, tipo := range []string{entity.MovementTypeReturn, entity.MovementTypeDiscard} {
		t.Run(tipo, func(t *testing.T) {
			ok := mov("m", tipo, 7, "2025-01-01", "10:00")
			ok.Reason = "rota"
			assert.NoError(t, ledger.Validate(ok, 7, activeRefs()), "igual al saldo se permite")

			over := mov("m", tipo, 8, "2025-01-01", "10:00")
			over.Reason = "rota"
			err := ledger.Validate(over, 7, activeRefs())
			require.ErrorIs(t, err, domain.ErrInsufficientBalance)

			var insufficient *domain.InsufficientBalanceError
			require.True(t, errors.As(err, &insufficient))
			assert.Equal(t, 7, insufficient.Available)
			assert.Equal(t, 8, insufficient.Requested)
			assert.Contains(t, err.Error(), "7", "el mensaje debe incluir el saldo disponible")
		})
	}
}

func TestValidate_AjusteExentoDeSaldo(t *testing.T) {
	m := mov("m", entity.MovementTypeAdjustment, 500, "2025-01-01", "10:00")
	m.Reason = "conteo físico"
	assert.NoError(t, ledger.Validate(m, 0, activeRefs()))
}

func TestValidate_MotivoObligatorio(t *testing.T) {
	retiro := mov("m", entity.MovementTypeDiscard, 1, "2025-01-01", "10:00")
	assert.ErrorIs(t, ledger.Validate(retiro, 5, activeRefs()), domain.ErrMissingReason)

	retiro.Reason = "   "
	assert.ErrorIs(t, ledger.Validate(retiro, 5, activeRefs()), domain.ErrMissingReason)

	ajuste := mov("m", entity.MovementTypeAdjustment, 1, "2025-01-01", "10:00")
	assert.ErrorIs(t, ledger.Validate(ajuste, 5, activeRefs()), domain.ErrMissingReason)

	devolucion := mov("m", entity.MovementTypeReturn, 1, "2025-01-01", "10:00")
	assert.NoError(t, ledger.Validate(devolucion, 5, activeRefs()), "la devolución no requiere motivo")
}

func TestValidate_RechazoIdempotente(t *testing.T) {
	m := mov("m", entity.MovementTypeDiscard, 20, "2025-01-01", "10:00")
	m.Reason = "broken"
	first := ledger.Validate(m, 7, activeRefs())
	second := ledger.Validate(m, 7, activeRefs())
	require.Error(t, first)
	assert.Equal(t, first, second)
}
