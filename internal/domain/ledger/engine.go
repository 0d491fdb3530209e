// Package ledger contiene la regla de actualización de saldos y la validación de movimientos.
// No tiene estado ni I/O: ambos adaptadores de almacenamiento comparten esta única implementación.
package ledger

import (
	"sort"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

// ApplyMovement calcula el nuevo saldo de un par (cliente, tipo de caja) a partir del saldo previo.
//
//	entrega     prior + cantidad
//	devolucion  prior - cantidad
//	retiro      prior - cantidad
//	ajuste      cantidad (valor absoluto)
//
// El resultado se acota a cero sin error. Un tipo desconocido deja el saldo igual.
func ApplyMovement(prior int, m *entity.Movement) int {
	next := prior
	switch m.Type {
	case entity.MovementTypeDelivery:
		next = prior + m.Quantity
	case entity.MovementTypeReturn, entity.MovementTypeDiscard:
		next = prior - m.Quantity
	case entity.MovementTypeAdjustment:
		next = m.Quantity
	}
	return max(0, next)
}

// SortChronological ordena los movimientos por (fecha, hora, id) ascendente, in place.
func SortChronological(movs []*entity.Movement) {
	sort.SliceStable(movs, func(i, j int) bool { return movs[i].Before(movs[j]) })
}

// Fold aplica ApplyMovement en orden cronológico partiendo de cero.
// Todos los movimientos deben pertenecer al mismo par; no modifica el slice recibido.
func Fold(movs []*entity.Movement) int {
	ordered := make([]*entity.Movement, len(movs))
	copy(ordered, movs)
	SortChronological(ordered)
	balance := 0
	for _, m := range ordered {
		balance = ApplyMovement(balance, m)
	}
	return balance
}

// FoldAll agrupa por par y devuelve la tabla de saldos completa derivada del log.
func FoldAll(movs []*entity.Movement) map[entity.PairKey]int {
	groups := make(map[entity.PairKey][]*entity.Movement)
	for _, m := range movs {
		groups[m.Key()] = append(groups[m.Key()], m)
	}
	out := make(map[entity.PairKey]int, len(groups))
	for key, group := range groups {
		out[key] = Fold(group)
	}
	return out
}
