package repository

import (
	"context"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

// MovementRepository define el puerto del log de movimientos (solo agregar).
type MovementRepository interface {
	// Append persiste el movimiento; asigna ID si viene vacío.
	Append(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// List aplica el filtro, ordena por (fecha, hora) descendente y respeta f.EffectiveLimit().
	List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error)
	// ListByPair devuelve el historial completo de un par, sin límite.
	ListByPair(ctx context.Context, clientID, crateTypeID string) ([]*entity.Movement, error)
	// ListAll devuelve el log completo, sin límite (reconstrucción de saldos).
	ListAll(ctx context.Context) ([]*entity.Movement, error)
	CountByType(ctx context.Context) (map[string]int, error)
	CountByClient(ctx context.Context, clientID string) (int, error)
	CountByCrateType(ctx context.Context, crateTypeID string) (int, error)
}
