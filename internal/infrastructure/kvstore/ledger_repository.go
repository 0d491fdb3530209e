package kvstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.BalanceRepository  = (*BalanceRepo)(nil)
)

// MovementRepo log de movimientos sobre la clave "movimientos_cajas".
type MovementRepo struct {
	x executor
}

// Append agrega el movimiento al final del log.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = ids.New()
	}
	rec := newMovementRecord(m)
	return update(r.x, keyMovements, func(recs []movementRecord) ([]movementRecord, error) {
		for _, e := range recs {
			if e.ID == rec.ID {
				return nil, domain.NewStorageError("insert movement", errDuplicateID)
			}
		}
		return append(recs, rec), nil
	})
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := read(r.x, keyMovements, func(recs []movementRecord) error {
		for _, e := range recs {
			if e.ID == id {
				out = e.entity()
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List filtra y devuelve los más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := read(r.x, keyMovements, func(recs []movementRecord) error {
		for _, e := range recs {
			m := e.entity()
			if f.Matches(m) {
				out = append(out, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].Before(out[i]) })
	if limit := f.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListByPair devuelve el historial del par en orden de inserción.
func (r *MovementRepo) ListByPair(ctx context.Context, clientID, crateTypeID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := read(r.x, keyMovements, func(recs []movementRecord) error {
		for _, e := range recs {
			if e.ClientID == clientID && e.CrateTypeID == crateTypeID {
				out = append(out, e.entity())
			}
		}
		return nil
	})
	return out, err
}

// ListAll devuelve el log completo.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := read(r.x, keyMovements, func(recs []movementRecord) error {
		out = make([]*entity.Movement, 0, len(recs))
		for _, e := range recs {
			out = append(out, e.entity())
		}
		return nil
	})
	return out, err
}

// CountByType cuenta movimientos por tipo.
func (r *MovementRepo) CountByType(ctx context.Context) (map[string]int, error) {
	out := map[string]int{}
	err := read(r.x, keyMovements, func(recs []movementRecord) error {
		for _, e := range recs {
			out[e.Type]++
		}
		return nil
	})
	return out, err
}

// CountByClient cuenta movimientos de un cliente.
func (r *MovementRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	return r.count(func(e movementRecord) bool { return e.ClientID == clientID })
}

// CountByCrateType cuenta movimientos de un tipo de caja.
func (r *MovementRepo) CountByCrateType(ctx context.Context, crateTypeID string) (int, error) {
	return r.count(func(e movementRecord) bool { return e.CrateTypeID == crateTypeID })
}

func (r *MovementRepo) count(match func(movementRecord) bool) (int, error) {
	n := 0
	err := read(r.x, keyMovements, func(recs []movementRecord) error {
		for _, e := range recs {
			if match(e) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// BalanceRepo saldos materializados sobre la clave "saldos_clientes".
type BalanceRepo struct {
	x executor
}

// Get devuelve el saldo del par; 0 si no hay fila.
func (r *BalanceRepo) Get(ctx context.Context, clientID, crateTypeID string) (int, error) {
	qty := 0
	err := read(r.x, keyBalances, func(recs []balanceRecord) error {
		for _, e := range recs {
			if e.ClientID == clientID && e.CrateTypeID == crateTypeID {
				qty = e.Quantity
				return nil
			}
		}
		return nil
	})
	return qty, err
}

// GetForUpdate equivale a Get: dentro de Run el mutex del almacén ya excluye a otros escritores.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, clientID, crateTypeID string) (int, error) {
	return r.Get(ctx, clientID, crateTypeID)
}

// Put crea o reemplaza el saldo del par.
func (r *BalanceRepo) Put(ctx context.Context, clientID, crateTypeID string, quantity int) error {
	rec := balanceRecord{ClientID: clientID, CrateTypeID: crateTypeID, Quantity: quantity, UpdatedAt: time.Now().UTC()}
	return update(r.x, keyBalances, func(recs []balanceRecord) ([]balanceRecord, error) {
		for i, e := range recs {
			if e.ClientID == clientID && e.CrateTypeID == crateTypeID {
				recs[i] = rec
				return recs, nil
			}
		}
		return append(recs, rec), nil
	})
}

// List devuelve todos los saldos.
func (r *BalanceRepo) List(ctx context.Context) ([]*entity.Balance, error) {
	return r.list(func(balanceRecord) bool { return true })
}

// ListByClient devuelve los saldos de un cliente.
func (r *BalanceRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Balance, error) {
	return r.list(func(e balanceRecord) bool { return e.ClientID == clientID })
}

func (r *BalanceRepo) list(match func(balanceRecord) bool) ([]*entity.Balance, error) {
	var out []*entity.Balance
	err := read(r.x, keyBalances, func(recs []balanceRecord) error {
		for _, e := range recs {
			if match(e) {
				out = append(out, e.entity())
			}
		}
		return nil
	})
	return out, err
}
