package kvstore

import (
	"context"
	"sort"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

var (
	_ repository.CrateTypeRepository = (*CrateTypeRepo)(nil)
	_ repository.ClientRepository    = (*ClientRepo)(nil)
)

// CrateTypeRepo tipos de caja sobre la clave "tipos_cajas".
type CrateTypeRepo struct {
	x executor
}

// Create persiste un nuevo tipo de caja.
func (r *CrateTypeRepo) Create(ctx context.Context, t *entity.CrateType) error {
	rec := newCrateTypeRecord(t)
	return update(r.x, keyCrateTypes, func(recs []crateTypeRecord) ([]crateTypeRecord, error) {
		for _, e := range recs {
			if e.ID == rec.ID {
				return nil, domain.NewStorageError("insert crate type", errDuplicateID)
			}
			if e.CodeKey == rec.CodeKey {
				return nil, domain.ErrDuplicateCode
			}
		}
		return append(recs, rec), nil
	})
}

// GetByID obtiene un tipo de caja por ID.
func (r *CrateTypeRepo) GetByID(ctx context.Context, id string) (*entity.CrateType, error) {
	var out *entity.CrateType
	err := read(r.x, keyCrateTypes, func(recs []crateTypeRecord) error {
		for _, e := range recs {
			if e.ID == id {
				out = e.entity()
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetByCode obtiene un tipo de caja por código, sin distinguir mayúsculas.
func (r *CrateTypeRepo) GetByCode(ctx context.Context, code string) (*entity.CrateType, error) {
	key := entity.CodeKey(code)
	var out *entity.CrateType
	err := read(r.x, keyCrateTypes, func(recs []crateTypeRecord) error {
		for _, e := range recs {
			if e.CodeKey == key {
				out = e.entity()
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List devuelve los tipos ordenados por código.
func (r *CrateTypeRepo) List(ctx context.Context) ([]*entity.CrateType, error) {
	var out []*entity.CrateType
	err := read(r.x, keyCrateTypes, func(recs []crateTypeRecord) error {
		for _, e := range recs {
			out = append(out, e.entity())
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

// Update reemplaza nombre, código, color y estado.
func (r *CrateTypeRepo) Update(ctx context.Context, t *entity.CrateType) error {
	rec := newCrateTypeRecord(t)
	return update(r.x, keyCrateTypes, func(recs []crateTypeRecord) ([]crateTypeRecord, error) {
		idx := -1
		for i, e := range recs {
			if e.ID == rec.ID {
				idx = i
			} else if e.CodeKey == rec.CodeKey {
				return nil, domain.ErrDuplicateCode
			}
		}
		if idx < 0 {
			return nil, domain.ErrNotFound
		}
		rec.CreatedAt = recs[idx].CreatedAt
		recs[idx] = rec
		return recs, nil
	})
}

// Delete elimina el tipo de caja.
func (r *CrateTypeRepo) Delete(ctx context.Context, id string) error {
	return update(r.x, keyCrateTypes, func(recs []crateTypeRecord) ([]crateTypeRecord, error) {
		for i, e := range recs {
			if e.ID == id {
				return append(recs[:i:i], recs[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// ClientRepo clientes sobre la clave "clientes".
type ClientRepo struct {
	x executor
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	rec := newClientRecord(c)
	return update(r.x, keyClients, func(recs []clientRecord) ([]clientRecord, error) {
		for _, e := range recs {
			if e.ID == rec.ID {
				return nil, domain.NewStorageError("insert client", errDuplicateID)
			}
		}
		return append(recs, rec), nil
	})
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := read(r.x, keyClients, func(recs []clientRecord) error {
		for _, e := range recs {
			if e.ID == id {
				out = e.entity()
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List devuelve los clientes ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	var out []*entity.Client
	err := read(r.x, keyClients, func(recs []clientRecord) error {
		for _, e := range recs {
			out = append(out, e.entity())
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// Update reemplaza nombre, contacto y estado.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	rec := newClientRecord(c)
	return update(r.x, keyClients, func(recs []clientRecord) ([]clientRecord, error) {
		for i, e := range recs {
			if e.ID == rec.ID {
				rec.CreatedAt = e.CreatedAt
				recs[i] = rec
				return recs, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// Delete elimina el cliente.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return update(r.x, keyClients, func(recs []clientRecord) ([]clientRecord, error) {
		for i, e := range recs {
			if e.ID == id {
				return append(recs[:i:i], recs[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
