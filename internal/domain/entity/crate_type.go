package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// CrateType representa un tipo de caja retornable (NEG, VER, ORU...).
type CrateType struct {
	ID        string
	Code      string // código corto, único sin distinguir mayúsculas
	Name      string
	Color     string // color de presentación, ej. #1e293b
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CodeKey normaliza un código para comparación sin distinguir mayúsculas ("neg" == "NEG").
// Es la clave de unicidad que usan todos los adaptadores de almacenamiento.
func CodeKey(code string) string {
	return cases.Fold().String(strings.TrimSpace(code))
}

// CodeKey devuelve la clave normalizada del código del tipo de caja.
func (t *CrateType) CodeKey() string {
	return CodeKey(t.Code)
}

// DefaultCrateTypes tipos de caja con los que se inicializa un almacén vacío.
func DefaultCrateTypes() []CrateType {
	return []CrateType{
		{Code: "NEG", Name: "Negras", Color: "#1e293b", Active: true},
		{Code: "VER", Name: "Verdes", Color: "#10b981", Active: true},
		{Code: "ORU", Name: "Oruro", Color: "#f59e0b", Active: true},
	}
}
