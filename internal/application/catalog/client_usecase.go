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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
	tx   repository.TxRunner
	ids  ids.Generator
	now  func() time.Time
}

// NewClientUseCase construye el caso de uso. clock nil = time.Now.
func NewClientUseCase(repo repository.ClientRepository, tx repository.TxRunner, gen ids.Generator, clock func() time.Time) *ClientUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ClientUseCase{repo: repo, tx: tx, ids: gen, now: clock}
}

// Create crea un cliente activo salvo que se indique lo contrario.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now().UTC()
	c := &entity.Client{
		ID:        uc.ids.NewID(),
		Name:      name,
		Contact:   strings.TrimSpace(in.Contacto),
		Active:    in.Activo == nil || *in.Activo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente; domain.ErrNotFound si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// List lista los clientes ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Update reemplaza nombre y contacto; Activo nil deja el estado como está.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = name
	c.Contact = strings.TrimSpace(in.Contacto)
	if in.Activo != nil {
		c.Active = *in.Activo
	}
	c.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Delete elimina un cliente sin movimientos; con historial devuelve domain.ErrInUse.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		c, err := repos.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		n, err := repos.Movements.CountByClient(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrInUse
		}
		return repos.Clients.Delete(ctx, id)
	})
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Nombre:    c.Name,
		Contacto:  c.Contact,
		Activo:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
