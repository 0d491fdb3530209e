package dto

import "time"

// CrateTypeRequest body para POST/PUT /api/tipos-cajas.
type CrateTypeRequest struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
	Activo *bool  `json:"activo,omitempty"` // nil = true al crear, sin cambio al actualizar
}

// CrateTypeResponse tipo de caja en respuestas.
type CrateTypeResponse struct {
	ID        string    `json:"id"`
	Codigo    string    `json:"codigo"`
	Nombre    string    `json:"nombre"`
	Color     string    `json:"color"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientRequest body para POST/PUT /api/clientes.
type ClientRequest struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto"`
	Activo   *bool  `json:"activo,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  string    `json:"contacto"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
