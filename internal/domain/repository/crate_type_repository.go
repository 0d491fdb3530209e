package repository

import (
	"context"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

// CrateTypeRepository define el puerto de persistencia para tipos de caja.
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type CrateTypeRepository interface {
	// Create falla con domain.ErrDuplicateCode si el código (sin distinguir mayúsculas) ya existe,
	// activo o inactivo.
	Create(ctx context.Context, t *entity.CrateType) error
	GetByID(ctx context.Context, id string) (*entity.CrateType, error)
	// GetByCode busca por entity.CodeKey(code).
	GetByCode(ctx context.Context, code string) (*entity.CrateType, error)
	// List devuelve todos los tipos ordenados por código.
	List(ctx context.Context) ([]*entity.CrateType, error)
	// Update devuelve domain.ErrNotFound si no existe y domain.ErrDuplicateCode si el nuevo código choca.
	Update(ctx context.Context, t *entity.CrateType) error
	Delete(ctx context.Context, id string) error
}
