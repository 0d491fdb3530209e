package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.BalanceRepository  = (*BalanceRepo)(nil)
)

// MovementRepo implementación del puerto MovementRepository con GORM.
type MovementRepo struct {
	db *gorm.DB
}

// Append inserta el movimiento.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = ids.New()
	}
	return storageErr("insert movement", r.db.WithContext(ctx).Create(toMovementModel(m)).Error)
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var m movementModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get movement", err)
	}
	return m.toEntity(), nil
}

// List filtra y devuelve los más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	q := r.db.WithContext(ctx).Model(&movementModel{})
	if f.Type != "" {
		q = q.Where("tipo = ?", f.Type)
	}
	if f.ClientID != "" {
		q = q.Where("cliente_id = ?", f.ClientID)
	}
	if f.CrateTypeID != "" {
		q = q.Where("tipo_caja_id = ?", f.CrateTypeID)
	}
	if f.DateFrom != "" {
		q = q.Where("fecha >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("fecha <= ?", f.DateTo)
	}
	var rows []movementModel
	if err := q.Order("fecha DESC, hora DESC, id DESC").Limit(f.EffectiveLimit()).Find(&rows).Error; err != nil {
		return nil, storageErr("list movements", err)
	}
	return toMovements(rows), nil
}

// ListByPair devuelve el historial del par.
func (r *MovementRepo) ListByPair(ctx context.Context, clientID, crateTypeID string) ([]*entity.Movement, error) {
	var rows []movementModel
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND tipo_caja_id = ?", clientID, crateTypeID).
		Order("fecha, hora, id").Find(&rows).Error
	if err != nil {
		return nil, storageErr("list pair movements", err)
	}
	return toMovements(rows), nil
}

// ListAll devuelve el log completo.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	var rows []movementModel
	if err := r.db.WithContext(ctx).Order("fecha, hora, id").Find(&rows).Error; err != nil {
		return nil, storageErr("list all movements", err)
	}
	return toMovements(rows), nil
}

func toMovements(rows []movementModel) []*entity.Movement {
	out := make([]*entity.Movement, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out
}

// CountByType cuenta movimientos por tipo.
func (r *MovementRepo) CountByType(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Tipo string
		N    int
	}
	err := r.db.WithContext(ctx).Model(&movementModel{}).
		Select("tipo, COUNT(*) AS n").Group("tipo").Scan(&rows).Error
	if err != nil {
		return nil, storageErr("count movements", err)
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Tipo] = row.N
	}
	return out, nil
}

// CountByClient cuenta movimientos de un cliente.
func (r *MovementRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	return r.count(ctx, "cliente_id = ?", clientID)
}

// CountByCrateType cuenta movimientos de un tipo de caja.
func (r *MovementRepo) CountByCrateType(ctx context.Context, crateTypeID string) (int, error) {
	return r.count(ctx, "tipo_caja_id = ?", crateTypeID)
}

func (r *MovementRepo) count(ctx context.Context, cond string, arg any) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&movementModel{}).Where(cond, arg).Count(&n).Error; err != nil {
		return 0, storageErr("count movements", err)
	}
	return int(n), nil
}

// BalanceRepo implementación del puerto BalanceRepository con GORM.
type BalanceRepo struct {
	db *gorm.DB
}

// Get devuelve el saldo del par; 0 si no hay fila.
func (r *BalanceRepo) Get(ctx context.Context, clientID, crateTypeID string) (int, error) {
	return r.get(r.db.WithContext(ctx), clientID, crateTypeID)
}

// GetForUpdate bloquea la fila del par. SQLite no soporta FOR UPDATE; ahí basta la conexión única.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, clientID, crateTypeID string) (int, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(q, clientID, crateTypeID)
}

func (r *BalanceRepo) get(q *gorm.DB, clientID, crateTypeID string) (int, error) {
	var m balanceModel
	err := q.Where("cliente_id = ? AND tipo_caja_id = ?", clientID, crateTypeID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, storageErr("get balance", err)
	}
	return m.Quantity, nil
}

// Put crea o reemplaza el saldo del par.
func (r *BalanceRepo) Put(ctx context.Context, clientID, crateTypeID string, quantity int) error {
	m := &balanceModel{ClientID: clientID, CrateTypeID: crateTypeID, Quantity: quantity, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cliente_id"}, {Name: "tipo_caja_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cantidad", "updated_at"}),
	}).Create(m).Error
	return storageErr("put balance", err)
}

// List devuelve todos los saldos.
func (r *BalanceRepo) List(ctx context.Context) ([]*entity.Balance, error) {
	return r.list(r.db.WithContext(ctx))
}

// ListByClient devuelve los saldos de un cliente.
func (r *BalanceRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Balance, error) {
	return r.list(r.db.WithContext(ctx).Where("cliente_id = ?", clientID))
}

func (r *BalanceRepo) list(q *gorm.DB) ([]*entity.Balance, error) {
	var rows []balanceModel
	if err := q.Order("cliente_id, tipo_caja_id").Find(&rows).Error; err != nil {
		return nil, storageErr("list balances", err)
	}
	out := make([]*entity.Balance, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
