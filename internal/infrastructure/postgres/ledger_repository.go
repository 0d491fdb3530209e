package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.BalanceRepository  = (*BalanceRepo)(nil)
)

// MovementRepo log de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, cliente_id, tipo_caja_id, cantidad, fecha, hora, tipo, motivo, observaciones, created_at`

// Append inserta el movimiento.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = ids.New()
	}
	fecha, err := parseDate(m.Date)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO movimientos_cajas (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		m.ID, m.ClientID, m.CrateTypeID, m.Quantity, fecha, m.Time, m.Type, m.Reason, m.Notes, m.CreatedAt,
	)
	return storageErr("insert movement", err)
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM movimientos_cajas WHERE id = $1`, id)
	if err != nil {
		return nil, storageErr("get movement", err)
	}
	out, err := scanMovements(rows)
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return out[0], nil
}

// List filtra y devuelve los más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("tipo = $%d", f.Type)
	}
	if f.ClientID != "" {
		add("cliente_id = $%d", f.ClientID)
	}
	if f.CrateTypeID != "" {
		add("tipo_caja_id = $%d", f.CrateTypeID)
	}
	if f.DateFrom != "" {
		d, err := parseDate(f.DateFrom)
		if err != nil {
			return nil, err
		}
		add("fecha >= $%d", d)
	}
	if f.DateTo != "" {
		d, err := parseDate(f.DateTo)
		if err != nil {
			return nil, err
		}
		add("fecha <= $%d", d)
	}

	query := `SELECT ` + movementColumns + ` FROM movimientos_cajas`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.EffectiveLimit())
	query += fmt.Sprintf(` ORDER BY fecha DESC, hora DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list movements", err)
	}
	return scanMovements(rows)
}

// ListByPair devuelve el historial completo del par.
func (r *MovementRepo) ListByPair(ctx context.Context, clientID, crateTypeID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos_cajas
		WHERE cliente_id = $1 AND tipo_caja_id = $2 ORDER BY fecha, hora, id`
	rows, err := r.q.Query(ctx, query, clientID, crateTypeID)
	if err != nil {
		return nil, storageErr("list pair movements", err)
	}
	return scanMovements(rows)
}

// ListAll devuelve el log completo.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM movimientos_cajas ORDER BY fecha, hora, id`)
	if err != nil {
		return nil, storageErr("list all movements", err)
	}
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var out []*entity.Movement
	for rows.Next() {
		var (
			m     entity.Movement
			fecha time.Time
		)
		if err := rows.Scan(
			&m.ID, &m.ClientID, &m.CrateTypeID, &m.Quantity, &fecha, &m.Time,
			&m.Type, &m.Reason, &m.Notes, &m.CreatedAt,
		); err != nil {
			return nil, storageErr("scan movement", err)
		}
		m.Date = fecha.Format(entity.DateLayout)
		out = append(out, &m)
	}
	return out, storageErr("list movements", rows.Err())
}

// CountByType cuenta movimientos por tipo.
func (r *MovementRepo) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT tipo, COUNT(*) FROM movimientos_cajas GROUP BY tipo`)
	if err != nil {
		return nil, storageErr("count movements", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			tipo string
			n    int
		)
		if err := rows.Scan(&tipo, &n); err != nil {
			return nil, storageErr("scan count", err)
		}
		out[tipo] = n
	}
	return out, storageErr("count movements", rows.Err())
}

// CountByClient cuenta movimientos de un cliente.
func (r *MovementRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM movimientos_cajas WHERE cliente_id = $1`, clientID)
}

// CountByCrateType cuenta movimientos de un tipo de caja.
func (r *MovementRepo) CountByCrateType(ctx context.Context, crateTypeID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM movimientos_cajas WHERE tipo_caja_id = $1`, crateTypeID)
}

func (r *MovementRepo) count(ctx context.Context, query, arg string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, arg).Scan(&n); err != nil {
		return 0, storageErr("count movements", err)
	}
	return n, nil
}

// BalanceRepo saldos materializados sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos.
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get devuelve el saldo del par; 0 si no hay fila.
func (r *BalanceRepo) Get(ctx context.Context, clientID, crateTypeID string) (int, error) {
	query := `SELECT cantidad FROM saldos_clientes WHERE cliente_id = $1 AND tipo_caja_id = $2`
	var qty int
	err := r.q.QueryRow(ctx, query, clientID, crateTypeID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, storageErr("get balance", err)
	}
	return qty, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Crea antes la fila en 0 si no existe, para que también el primer movimiento del par quede serializado.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, clientID, crateTypeID string) (int, error) {
	insert := `
		INSERT INTO saldos_clientes (cliente_id, tipo_caja_id, cantidad, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (cliente_id, tipo_caja_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, clientID, crateTypeID); err != nil {
		return 0, storageErr("lock balance", err)
	}
	query := `
		SELECT cantidad FROM saldos_clientes
		WHERE cliente_id = $1 AND tipo_caja_id = $2
		FOR UPDATE`
	var qty int
	if err := r.q.QueryRow(ctx, query, clientID, crateTypeID).Scan(&qty); err != nil {
		return 0, storageErr("lock balance", err)
	}
	return qty, nil
}

// Put inserta o actualiza la cantidad del par.
func (r *BalanceRepo) Put(ctx context.Context, clientID, crateTypeID string, quantity int) error {
	query := `
		INSERT INTO saldos_clientes (cliente_id, tipo_caja_id, cantidad, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (cliente_id, tipo_caja_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = now()`
	_, err := r.q.Exec(ctx, query, clientID, crateTypeID, quantity)
	return storageErr("put balance", err)
}

// List devuelve todos los saldos.
func (r *BalanceRepo) List(ctx context.Context) ([]*entity.Balance, error) {
	return r.list(ctx, `SELECT cliente_id, tipo_caja_id, cantidad, updated_at
		FROM saldos_clientes ORDER BY cliente_id, tipo_caja_id`)
}

// ListByClient devuelve los saldos de un cliente.
func (r *BalanceRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Balance, error) {
	return r.list(ctx, `SELECT cliente_id, tipo_caja_id, cantidad, updated_at
		FROM saldos_clientes WHERE cliente_id = $1 ORDER BY tipo_caja_id`, clientID)
}

func (r *BalanceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Balance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list balances", err)
	}
	defer rows.Close()
	var out []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.ClientID, &b.CrateTypeID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, storageErr("scan balance", err)
		}
		out = append(out, &b)
	}
	return out, storageErr("list balances", rows.Err())
}
