package postgres

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cajas-api/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Migrate crea las tablas e índices si no existen.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return domain.NewStorageError("migrate", err)
	}
	return nil
}
