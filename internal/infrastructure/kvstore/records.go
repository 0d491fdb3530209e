package kvstore

import (
	"time"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

type crateTypeRecord struct {
	ID        string    `json:"id"`
	Code      string    `json:"codigo"`
	CodeKey   string    `json:"codigo_clave"`
	Name      string    `json:"nombre"`
	Color     string    `json:"color"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCrateTypeRecord(t *entity.CrateType) crateTypeRecord {
	return crateTypeRecord{
		ID: t.ID, Code: t.Code, CodeKey: t.CodeKey(), Name: t.Name, Color: t.Color,
		Active: t.Active, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func (r crateTypeRecord) entity() *entity.CrateType {
	return &entity.CrateType{
		ID: r.ID, Code: r.Code, Name: r.Name, Color: r.Color,
		Active: r.Active, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type clientRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Contact   string    `json:"contacto,omitempty"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newClientRecord(c *entity.Client) clientRecord {
	return clientRecord{
		ID: c.ID, Name: c.Name, Contact: c.Contact, Active: c.Active,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (r clientRecord) entity() *entity.Client {
	return &entity.Client{
		ID: r.ID, Name: r.Name, Contact: r.Contact, Active: r.Active,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type movementRecord struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"cliente_id"`
	CrateTypeID string    `json:"tipo_caja_id"`
	Quantity    int       `json:"cantidad"`
	Date        string    `json:"fecha"`
	Time        string    `json:"hora"`
	Type        string    `json:"tipo"`
	Reason      string    `json:"motivo,omitempty"`
	Notes       string    `json:"observaciones,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func newMovementRecord(m *entity.Movement) movementRecord {
	return movementRecord{
		ID: m.ID, ClientID: m.ClientID, CrateTypeID: m.CrateTypeID, Quantity: m.Quantity,
		Date: m.Date, Time: m.Time, Type: m.Type, Reason: m.Reason, Notes: m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

func (r movementRecord) entity() *entity.Movement {
	return &entity.Movement{
		ID: r.ID, ClientID: r.ClientID, CrateTypeID: r.CrateTypeID, Quantity: r.Quantity,
		Date: r.Date, Time: r.Time, Type: r.Type, Reason: r.Reason, Notes: r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

type balanceRecord struct {
	ClientID    string    `json:"cliente_id"`
	CrateTypeID string    `json:"tipo_caja_id"`
	Quantity    int       `json:"cantidad"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r balanceRecord) entity() *entity.Balance {
	return &entity.Balance{
		ClientID: r.ClientID, CrateTypeID: r.CrateTypeID, Quantity: r.Quantity, UpdatedAt: r.UpdatedAt,
	}
}
