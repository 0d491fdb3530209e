// Package catalog contiene los casos de uso de tipos de caja y clientes.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

// CrateTypeUseCase casos de uso CRUD para tipos de caja.
type CrateTypeUseCase struct {
	repo repository.CrateTypeRepository
	tx   repository.TxRunner
	ids  ids.Generator
	now  func() time.Time
}

// NewCrateTypeUseCase construye el caso de uso. clock nil = time.Now.
func NewCrateTypeUseCase(repo repository.CrateTypeRepository, tx repository.TxRunner, gen ids.Generator, clock func() time.Time) *CrateTypeUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &CrateTypeUseCase{repo: repo, tx: tx, ids: gen, now: clock}
}

// Create crea un tipo de caja. El código no distingue mayúsculas: "neg" choca con "NEG".
func (uc *CrateTypeUseCase) Create(ctx context.Context, in dto.CrateTypeRequest) (*dto.CrateTypeResponse, error) {
	code, name := strings.TrimSpace(in.Codigo), strings.TrimSpace(in.Nombre)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now().UTC()
	t := &entity.CrateType{
		ID:        uc.ids.NewID(),
		Code:      code,
		Name:      name,
		Color:     strings.TrimSpace(in.Color),
		Active:    in.Activo == nil || *in.Activo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toCrateTypeResponse(t), nil
}

// GetByID obtiene un tipo de caja; domain.ErrNotFound si no existe.
func (uc *CrateTypeUseCase) GetByID(ctx context.Context, id string) (*dto.CrateTypeResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toCrateTypeResponse(t), nil
}

// List lista todos los tipos (activos e inactivos) ordenados por código.
func (uc *CrateTypeUseCase) List(ctx context.Context) ([]dto.CrateTypeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CrateTypeResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toCrateTypeResponse(t))
	}
	return out, nil
}

// Update reemplaza código, nombre y color; Activo nil deja el estado como está.
func (uc *CrateTypeUseCase) Update(ctx context.Context, id string, in dto.CrateTypeRequest) (*dto.CrateTypeResponse, error) {
	code, name := strings.TrimSpace(in.Codigo), strings.TrimSpace(in.Nombre)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.Code = code
	t.Name = name
	t.Color = strings.TrimSpace(in.Color)
	if in.Activo != nil {
		t.Active = *in.Activo
	}
	t.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toCrateTypeResponse(t), nil
}

// Delete elimina un tipo de caja sin movimientos. Con historial devuelve domain.ErrInUse:
// en ese caso se desactiva en lugar de borrar.
func (uc *CrateTypeUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		t, err := repos.CrateTypes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		n, err := repos.Movements.CountByCrateType(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrInUse
		}
		return repos.CrateTypes.Delete(ctx, id)
	})
}

// Seed crea los tipos por defecto (NEG, VER, ORU) que falten y devuelve ese conjunto tal como quedó.
// Es idempotente.
func (uc *CrateTypeUseCase) Seed(ctx context.Context) ([]dto.CrateTypeResponse, error) {
	var out []dto.CrateTypeResponse
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		out = out[:0]
		for _, def := range entity.DefaultCrateTypes() {
			existing, err := repos.CrateTypes.GetByCode(ctx, def.Code)
			if err != nil {
				return err
			}
			if existing == nil {
				now := uc.now().UTC()
				t := def
				t.ID = uc.ids.NewID()
				t.CreatedAt, t.UpdatedAt = now, now
				if err := repos.CrateTypes.Create(ctx, &t); err != nil {
					return err
				}
				existing = &t
			}
			out = append(out, *toCrateTypeResponse(existing))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toCrateTypeResponse(t *entity.CrateType) *dto.CrateTypeResponse {
	return &dto.CrateTypeResponse{
		ID:        t.ID,
		Codigo:    t.Code,
		Nombre:    t.Name,
		Color:     t.Color,
		Activo:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
