package repository

import (
	"context"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

// BalanceRepository define el puerto para consultar/actualizar saldos por cliente+tipo de caja.
// Un par sin fila tiene saldo 0.
type BalanceRepository interface {
	Get(ctx context.Context, clientID, crateTypeID string) (int, error)
	// GetForUpdate lee el saldo y bloquea el par hasta el fin de la transacción en curso.
	GetForUpdate(ctx context.Context, clientID, crateTypeID string) (int, error)
	Put(ctx context.Context, clientID, crateTypeID string, quantity int) error
	List(ctx context.Context) ([]*entity.Balance, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.Balance, error)
}
