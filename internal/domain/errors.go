package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser un entero positivo")
	ErrUnknownReference    = errors.New("cliente o tipo de caja inexistente o inactivo")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrMissingReason       = errors.New("el motivo es obligatorio")
	ErrDuplicateCode       = errors.New("ya existe un tipo de caja con ese código")
	ErrInUse               = errors.New("el registro tiene movimientos asociados")
	ErrStorage             = errors.New("error de almacenamiento")
)

// InsufficientBalanceError rechazo previo a la escritura para devoluciones y retiros.
// errors.Is(err, ErrInsufficientBalance) es verdadero.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo insuficiente. Saldo disponible: %d", e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// UnknownReferenceError indica qué referencia no resolvió.
type UnknownReferenceError struct {
	Entity string // "cliente" o "tipo de caja"
	ID     string
	Reason string // "no encontrado" o "inactivo"
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s %s %s", e.Entity, e.ID, e.Reason)
}

func (e *UnknownReferenceError) Is(target error) bool {
	return target == ErrUnknownReference
}

// StorageError envuelve un error opaco del almacenamiento subyacente.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError construye un StorageError; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
