package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

var (
	_ repository.CrateTypeRepository = (*CrateTypeRepo)(nil)
	_ repository.ClientRepository    = (*ClientRepo)(nil)
)

// CrateTypeRepo implementación del puerto CrateTypeRepository con GORM.
type CrateTypeRepo struct {
	db *gorm.DB
}

// Create persiste un nuevo tipo de caja.
func (r *CrateTypeRepo) Create(ctx context.Context, t *entity.CrateType) error {
	m := toCrateTypeModel(t)
	if taken, err := r.codeTaken(ctx, m.CodeKey, ""); err != nil {
		return err
	} else if taken {
		return domain.ErrDuplicateCode
	}
	return storageErr("insert crate type", r.db.WithContext(ctx).Create(m).Error)
}

func (r *CrateTypeRepo) codeTaken(ctx context.Context, key, exceptID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&crateTypeModel{}).Where("codigo_clave = ?", key)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, storageErr("check crate type code", err)
	}
	return n > 0, nil
}

// GetByID obtiene un tipo de caja por ID.
func (r *CrateTypeRepo) GetByID(ctx context.Context, id string) (*entity.CrateType, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByCode obtiene un tipo de caja por código, sin distinguir mayúsculas.
func (r *CrateTypeRepo) GetByCode(ctx context.Context, code string) (*entity.CrateType, error) {
	return r.first(ctx, "codigo_clave = ?", entity.CodeKey(code))
}

func (r *CrateTypeRepo) first(ctx context.Context, cond string, arg any) (*entity.CrateType, error) {
	var m crateTypeModel
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get crate type", err)
	}
	return m.toEntity(), nil
}

// List devuelve los tipos ordenados por código.
func (r *CrateTypeRepo) List(ctx context.Context) ([]*entity.CrateType, error) {
	var rows []crateTypeModel
	if err := r.db.WithContext(ctx).Order("codigo").Find(&rows).Error; err != nil {
		return nil, storageErr("list crate types", err)
	}
	out := make([]*entity.CrateType, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// Update reemplaza nombre, código, color y estado.
func (r *CrateTypeRepo) Update(ctx context.Context, t *entity.CrateType) error {
	m := toCrateTypeModel(t)
	if taken, err := r.codeTaken(ctx, m.CodeKey, m.ID); err != nil {
		return err
	} else if taken {
		return domain.ErrDuplicateCode
	}
	res := r.db.WithContext(ctx).Model(&crateTypeModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"codigo":       m.Code,
		"codigo_clave": m.CodeKey,
		"nombre":       m.Name,
		"color":        m.Color,
		"activo":       m.Active,
		"updated_at":   m.UpdatedAt,
	})
	if res.Error != nil {
		return storageErr("update crate type", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el tipo de caja.
func (r *CrateTypeRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&crateTypeModel{})
	if res.Error != nil {
		return storageErr("delete crate type", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClientRepo implementación del puerto ClientRepository con GORM.
type ClientRepo struct {
	db *gorm.DB
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return storageErr("insert client", r.db.WithContext(ctx).Create(toClientModel(c)).Error)
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var m clientModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get client", err)
	}
	return m.toEntity(), nil
}

// List devuelve los clientes ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	var rows []clientModel
	if err := r.db.WithContext(ctx).Order("nombre").Find(&rows).Error; err != nil {
		return nil, storageErr("list clients", err)
	}
	out := make([]*entity.Client, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// Update reemplaza nombre, contacto y estado.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	res := r.db.WithContext(ctx).Model(&clientModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"nombre":     c.Name,
		"contacto":   c.Contact,
		"activo":     c.Active,
		"updated_at": c.UpdatedAt,
	})
	if res.Error != nil {
		return storageErr("update client", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&clientModel{})
	if res.Error != nil {
		return storageErr("delete client", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
