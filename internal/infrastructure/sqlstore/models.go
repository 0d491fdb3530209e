package sqlstore

import (
	"time"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

type crateTypeModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Code      string `gorm:"column:codigo;not null;size:20"`
	CodeKey   string `gorm:"column:codigo_clave;not null;size:20;uniqueIndex"`
	Name      string `gorm:"column:nombre;not null;size:100"`
	Color     string `gorm:"column:color;size:20"`
	Active    bool   `gorm:"column:activo;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (crateTypeModel) TableName() string { return "tipos_cajas" }

func toCrateTypeModel(t *entity.CrateType) *crateTypeModel {
	return &crateTypeModel{
		ID: t.ID, Code: t.Code, CodeKey: t.CodeKey(), Name: t.Name, Color: t.Color,
		Active: t.Active, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func (m *crateTypeModel) toEntity() *entity.CrateType {
	return &entity.CrateType{
		ID: m.ID, Code: m.Code, Name: m.Name, Color: m.Color,
		Active: m.Active, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type clientModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"column:nombre;not null;size:150;index"`
	Contact   string `gorm:"column:contacto;size:150"`
	Active    bool   `gorm:"column:activo;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (clientModel) TableName() string { return "clientes" }

func toClientModel(c *entity.Client) *clientModel {
	return &clientModel{
		ID: c.ID, Name: c.Name, Contact: c.Contact, Active: c.Active,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (m *clientModel) toEntity() *entity.Client {
	return &entity.Client{
		ID: m.ID, Name: m.Name, Contact: m.Contact, Active: m.Active,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type movementModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	ClientID    string `gorm:"column:cliente_id;not null;size:64;index:idx_mov_par"`
	CrateTypeID string `gorm:"column:tipo_caja_id;not null;size:64;index:idx_mov_par"`
	Quantity    int    `gorm:"column:cantidad;not null"`
	Date        string `gorm:"column:fecha;not null;size:10;index"`
	Time        string `gorm:"column:hora;not null;size:8"`
	Type        string `gorm:"column:tipo;not null;size:20"`
	Reason      string `gorm:"column:motivo;size:255"`
	Notes       string `gorm:"column:observaciones"`
	CreatedAt   time.Time
}

func (movementModel) TableName() string { return "movimientos_cajas" }

func toMovementModel(m *entity.Movement) *movementModel {
	return &movementModel{
		ID: m.ID, ClientID: m.ClientID, CrateTypeID: m.CrateTypeID, Quantity: m.Quantity,
		Date: m.Date, Time: m.Time, Type: m.Type, Reason: m.Reason, Notes: m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

func (m *movementModel) toEntity() *entity.Movement {
	return &entity.Movement{
		ID: m.ID, ClientID: m.ClientID, CrateTypeID: m.CrateTypeID, Quantity: m.Quantity,
		Date: m.Date, Time: m.Time, Type: m.Type, Reason: m.Reason, Notes: m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

type balanceModel struct {
	ClientID    string `gorm:"column:cliente_id;primaryKey;size:64"`
	CrateTypeID string `gorm:"column:tipo_caja_id;primaryKey;size:64"`
	Quantity    int    `gorm:"column:cantidad;not null"`
	UpdatedAt   time.Time
}

func (balanceModel) TableName() string { return "saldos_clientes" }

func (m *balanceModel) toEntity() *entity.Balance {
	return &entity.Balance{
		ClientID: m.ClientID, CrateTypeID: m.CrateTypeID, Quantity: m.Quantity, UpdatedAt: m.UpdatedAt,
	}
}
