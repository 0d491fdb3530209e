package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"

	// codeKeyIndex índice único de schema.sql sobre tipos_cajas.codigo_clave.
	codeKeyIndex = "uq_tipos_cajas_codigo_clave"
)

// isCodeKeyViolation verifica si un error viola la unicidad del código de tipo de caja.
func isCodeKeyViolation(err error) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == codeKeyIndex
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == codeForeignKeyViolation
}

func asPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// storageErr traduce errores del driver a errores de dominio. Cualquier otra violación de unicidad
// (por ejemplo una llave primaria) queda como fallo de almacenamiento.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isCodeKeyViolation(err):
		return domain.ErrDuplicateCode
	case isForeignKeyViolation(err):
		return domain.ErrInUse
	}
	return domain.NewStorageError(op, err)
}

// parseDate convierte YYYY-MM-DD a time.Time para columnas DATE.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}
