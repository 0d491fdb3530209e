package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

var (
	_ repository.CrateTypeRepository = (*CrateTypeRepo)(nil)
	_ repository.ClientRepository    = (*ClientRepo)(nil)
)

// CrateTypeRepo implementación de CrateTypeRepository sobre PostgreSQL (usable con pool o tx).
type CrateTypeRepo struct {
	q Querier
}

// NewCrateTypeRepository construye el adaptador de tipos de caja.
func NewCrateTypeRepository(q Querier) *CrateTypeRepo {
	return &CrateTypeRepo{q: q}
}

const crateTypeColumns = `id, codigo, nombre, color, activo, created_at, updated_at`

// Create persiste un nuevo tipo de caja. La unicidad la garantiza el índice sobre codigo_clave.
func (r *CrateTypeRepo) Create(ctx context.Context, t *entity.CrateType) error {
	query := `
		INSERT INTO tipos_cajas (id, codigo, codigo_clave, nombre, color, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Code, t.CodeKey(), t.Name, t.Color, t.Active, t.CreatedAt, t.UpdatedAt,
	)
	return storageErr("insert crate type", err)
}

// GetByID obtiene un tipo de caja por ID.
func (r *CrateTypeRepo) GetByID(ctx context.Context, id string) (*entity.CrateType, error) {
	return r.getOne(ctx, `SELECT `+crateTypeColumns+` FROM tipos_cajas WHERE id = $1`, id)
}

// GetByCode obtiene un tipo de caja por código, sin distinguir mayúsculas.
func (r *CrateTypeRepo) GetByCode(ctx context.Context, code string) (*entity.CrateType, error) {
	return r.getOne(ctx, `SELECT `+crateTypeColumns+` FROM tipos_cajas WHERE codigo_clave = $1`, entity.CodeKey(code))
}

func (r *CrateTypeRepo) getOne(ctx context.Context, query string, arg any) (*entity.CrateType, error) {
	var t entity.CrateType
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.Code, &t.Name, &t.Color, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get crate type", err)
	}
	return &t, nil
}

// List devuelve los tipos ordenados por código.
func (r *CrateTypeRepo) List(ctx context.Context) ([]*entity.CrateType, error) {
	rows, err := r.q.Query(ctx, `SELECT `+crateTypeColumns+` FROM tipos_cajas ORDER BY codigo`)
	if err != nil {
		return nil, storageErr("list crate types", err)
	}
	defer rows.Close()
	var out []*entity.CrateType
	for rows.Next() {
		var t entity.CrateType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Color, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, storageErr("scan crate type", err)
		}
		out = append(out, &t)
	}
	return out, storageErr("list crate types", rows.Err())
}

// Update reemplaza nombre, código, color y estado.
func (r *CrateTypeRepo) Update(ctx context.Context, t *entity.CrateType) error {
	query := `
		UPDATE tipos_cajas
		SET codigo = $2, codigo_clave = $3, nombre = $4, color = $5, activo = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, t.ID, t.Code, t.CodeKey(), t.Name, t.Color, t.Active, t.UpdatedAt)
	if err != nil {
		return storageErr("update crate type", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el tipo de caja. Con movimientos o saldos asociados falla con domain.ErrInUse.
func (r *CrateTypeRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM tipos_cajas WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete crate type", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, nombre, contacto, activo, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clientes (id, nombre, contacto, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Contact, c.Active, c.CreatedAt, c.UpdatedAt)
	return storageErr("insert client", err)
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Contact, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get client", err)
	}
	return &c, nil
}

// List devuelve los clientes ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clientes ORDER BY nombre`)
	if err != nil {
		return nil, storageErr("list clients", err)
	}
	defer rows.Close()
	var out []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, storageErr("scan client", err)
		}
		out = append(out, &c)
	}
	return out, storageErr("list clients", rows.Err())
}

// Update reemplaza nombre, contacto y estado.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `UPDATE clientes SET nombre = $2, contacto = $3, activo = $4, updated_at = $5 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Contact, c.Active, c.UpdatedAt)
	if err != nil {
		return storageErr("update client", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente. Con movimientos o saldos asociados falla con domain.ErrInUse.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete client", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
