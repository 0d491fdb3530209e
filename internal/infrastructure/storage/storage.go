// Package storage construye el almacén configurado (postgres, sqlite o memory).
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/cajas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cajas-api/internal/infrastructure/sqlstore"
	"github.com/jhoicas/cajas-api/pkg/config"
)

// Backend repos en autocommit, runner de unidades de trabajo y health check de un mismo almacén.
type Backend struct {
	Driver string
	Repos  repository.Repos
	Runner repository.TxRunner
	Health repository.HealthChecker
	close  func()
}

// Close libera conexiones; seguro de llamar más de una vez.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
		b.close = nil
	}
}

// Open abre el almacén indicado por cfg.Store.Driver y deja el esquema listo.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Msg("conectado a PostgreSQL")
		return &Backend{
			Driver: cfg.Store.Driver,
			Repos:  postgres.NewRepos(pool),
			Runner: postgres.NewTxRunner(pool),
			Health: postgres.NewHealth(pool),
			close:  pool.Close,
		}, nil

	case config.DriverSQLite:
		s, err := sqlstore.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("path", cfg.Store.SQLitePath).Msg("base SQLite abierta")
		return &Backend{
			Driver: cfg.Store.Driver,
			Repos:  s.Repos(),
			Runner: s,
			Health: s,
			close:  func() { _ = s.Close() },
		}, nil

	case config.DriverMemory:
		var (
			s   *kvstore.Store
			err error
		)
		if cfg.Store.MemorySnapshotPath != "" {
			s, err = kvstore.Open(cfg.Store.MemorySnapshotPath)
			if err != nil {
				return nil, err
			}
		} else {
			s = kvstore.New()
			log.Warn().Msg("almacén en memoria sin snapshot: los datos se pierden al reiniciar")
		}
		return &Backend{
			Driver: cfg.Store.Driver,
			Repos:  s.Repos(),
			Runner: s,
			Health: s,
			close:  func() { _ = s.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Store.Driver)
}
