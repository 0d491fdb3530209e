package entity

import "time"

// Balance saldo actual de un tipo de caja en poder de un cliente (tabla materializada).
// Derivado de los movimientos: siempre igual al fold de los movimientos del par.
type Balance struct {
	ClientID    string
	CrateTypeID string
	Quantity    int // >= 0
	UpdatedAt   time.Time
}

// PairKey clave (cliente, tipo de caja) de una celda de saldo.
type PairKey struct {
	ClientID    string
	CrateTypeID string
}

// Key devuelve la clave del par al que pertenece el saldo.
func (b *Balance) Key() PairKey {
	return PairKey{ClientID: b.ClientID, CrateTypeID: b.CrateTypeID}
}

// Key devuelve la clave del par afectado por el movimiento.
func (m *Movement) Key() PairKey {
	return PairKey{ClientID: m.ClientID, CrateTypeID: m.CrateTypeID}
}
