package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cajas-api/internal/domain"
)

func TestStorageErr_Traduccion(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"código de tipo de caja repetido", &pgconn.PgError{Code: "23505", ConstraintName: "uq_tipos_cajas_codigo_clave"}, domain.ErrDuplicateCode},
		{"envuelto", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_tipos_cajas_codigo_clave"}), domain.ErrDuplicateCode},
		{"llave primaria de movimiento", &pgconn.PgError{Code: "23505", ConstraintName: "movimientos_cajas_pkey"}, domain.ErrStorage},
		{"llave primaria de cliente", &pgconn.PgError{Code: "23505", ConstraintName: "clientes_pkey"}, domain.ErrStorage},
		{"llave foránea", &pgconn.PgError{Code: "23503", ConstraintName: "movimientos_cajas_cliente_id_fkey"}, domain.ErrInUse},
		{"texto con 23505 sin PgError", errors.New("dial tcp: puerto 23505 rechazado"), domain.ErrStorage},
		{"texto con 23503 sin PgError", errors.New("timeout tras 23503ms"), domain.ErrStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, storageErr("op", tc.err), tc.want)
		})
	}
	assert.NoError(t, storageErr("op", nil))
}
