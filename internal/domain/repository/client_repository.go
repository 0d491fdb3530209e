package repository

import (
	"context"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// List devuelve todos los clientes ordenados por nombre.
	List(ctx context.Context) ([]*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id string) error
}
