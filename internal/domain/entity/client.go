package entity

import "time"

// Client representa un cliente que tiene cajas en préstamo.
type Client struct {
	ID        string
	Name      string
	Contact   string // opcional
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
