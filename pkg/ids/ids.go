// Package ids provee estrategias de generación de identificadores inyectables.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator genera identificadores únicos y ordenables por creación.
type Generator interface {
	NewID() string
}

// UUIDv7 genera UUID versión 7 (prefijo de tiempo en milisegundos, monótonos dentro del proceso).
type UUIDv7 struct{}

// NewID devuelve un UUIDv7 en forma canónica.
func (UUIDv7) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// New atajo para UUIDv7{}.NewID().
func New() string {
	return UUIDv7{}.NewID()
}

// Sequence contador monótono con prefijo; determinista para tests y seeds reproducibles.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence construye un contador que empieza en 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID devuelve prefix + número con ceros a la izquierda (ordenable lexicográficamente).
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%010d", s.prefix, s.n.Add(1))
}
