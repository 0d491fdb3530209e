package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/pkg/config"
)

var _ repository.HealthChecker = (*Health)(nil)

const (
	maxConns    = 10
	minConns    = 1
	dialTimeout = 5 * time.Second
)

// NewPool crea el pool de conexiones y verifica que la base responda.
// Usa DATABASE_URL si está definido; si no, arma el DSN desde DB_HOST, DB_PORT, etc.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = dialPreferIPv4
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dialPreferIPv4 intenta primero tcp4: en contenedores sin IPv6 el host puede resolver a AAAA.
func dialPreferIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: dialTimeout}
	if network == "tcp" {
		if conn, err := d.DialContext(ctx, "tcp4", addr); err == nil {
			return conn, nil
		}
	}
	return d.DialContext(ctx, network, addr)
}

// Health verificación de conectividad para /api/health.
type Health struct {
	pool *pgxpool.Pool
}

// NewHealth construye el verificador sobre el pool.
func NewHealth(pool *pgxpool.Pool) *Health {
	return &Health{pool: pool}
}

// Ping hace ping al pool.
func (h *Health) Ping(ctx context.Context) error {
	return domain.NewStorageError("ping postgres", h.pool.Ping(ctx))
}
