package ledger

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

// RecentMovements cantidad de movimientos recientes en el resumen.
const RecentMovements = 10

// QueryUseCase consultas de movimientos y saldos (solo lectura).
type QueryUseCase struct {
	repos repository.Repos
}

// NewQueryUseCase construye el caso de uso sobre repos en autocommit.
func NewQueryUseCase(repos repository.Repos) *QueryUseCase {
	return &QueryUseCase{repos: repos}
}

// ListMovements filtra movimientos, más recientes primero, con tope entity.MaxMovementResults.
func (uc *QueryUseCase) ListMovements(ctx context.Context, q dto.MovementFilterQuery) ([]dto.MovementResponse, error) {
	f := entity.MovementFilter{
		Type:        strings.ToLower(strings.TrimSpace(q.Tipo)),
		ClientID:    strings.TrimSpace(q.ClienteID),
		CrateTypeID: strings.TrimSpace(q.TipoCajaID),
		DateFrom:    strings.TrimSpace(q.FechaDesde),
		DateTo:      strings.TrimSpace(q.FechaHasta),
		Limit:       q.Limit,
	}
	if f.Type != "" && !entity.IsValidMovementType(f.Type) {
		return nil, domain.ErrInvalidInput
	}
	if (f.DateFrom != "" && !entity.ValidDate(f.DateFrom)) || (f.DateTo != "" && !entity.ValidDate(f.DateTo)) {
		return nil, domain.ErrInvalidInput
	}

	movs, err := uc.repos.Movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	idx, err := loadCatalog(ctx, uc.repos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, idx.movement(m))
	}
	return out, nil
}

// GetMovement obtiene un movimiento; domain.ErrNotFound si no existe.
func (uc *QueryUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.repos.Movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repos.Clients.GetByID(ctx, m.ClientID)
	if err != nil {
		return nil, err
	}
	t, err := uc.repos.CrateTypes.GetByID(ctx, m.CrateTypeID)
	if err != nil {
		return nil, err
	}
	out := toMovementResponse(m, c, t)
	return &out, nil
}

// GetBalance saldo de un par; 0 si nunca tuvo movimientos.
func (uc *QueryUseCase) GetBalance(ctx context.Context, clientID, crateTypeID string) (*dto.PairBalanceResponse, error) {
	qty, err := uc.repos.Balances.Get(ctx, clientID, crateTypeID)
	if err != nil {
		return nil, err
	}
	return &dto.PairBalanceResponse{Cantidad: qty}, nil
}

// ListBalances todos los saldos unidos con cliente y tipo de caja, ordenados por cliente y código.
func (uc *QueryUseCase) ListBalances(ctx context.Context) ([]dto.BalanceResponse, error) {
	list, err := uc.repos.Balances.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.joinBalances(ctx, list)
}

// ListClientBalances saldos de un cliente; domain.ErrNotFound si el cliente no existe.
func (uc *QueryUseCase) ListClientBalances(ctx context.Context, clientID string) ([]dto.BalanceResponse, error) {
	c, err := uc.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Balances.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return uc.joinBalances(ctx, list)
}

func (uc *QueryUseCase) joinBalances(ctx context.Context, list []*entity.Balance) ([]dto.BalanceResponse, error) {
	idx, err := loadCatalog(ctx, uc.repos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, idx.balance(b))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ClienteNombre != out[j].ClienteNombre {
			return out[i].ClienteNombre < out[j].ClienteNombre
		}
		return out[i].TipoCajaCodigo < out[j].TipoCajaCodigo
	})
	return out, nil
}

// Summary conteos por tipo de movimiento, clientes activos, cajas en préstamo y últimos movimientos.
func (uc *QueryUseCase) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	counts, err := uc.repos.Movements.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]int, len(entity.MovementTypes()))
	for _, t := range entity.MovementTypes() {
		byType[t] = counts[t]
	}

	idx, err := loadCatalog(ctx, uc.repos)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, c := range idx.clients {
		if c.Active {
			active++
		}
	}

	balances, err := uc.repos.Balances.List(ctx)
	if err != nil {
		return nil, err
	}
	perType := map[string]int{}
	total := 0
	for _, b := range balances {
		perType[b.CrateTypeID] += b.Quantity
		total += b.Quantity
	}
	onLoan := make([]dto.CratesOnLoanDTO, 0, len(idx.typeOrder))
	for _, t := range idx.typeOrder {
		onLoan = append(onLoan, dto.CratesOnLoanDTO{
			TipoCajaID: t.ID, Codigo: t.Code, Nombre: t.Name, Color: t.Color, Cantidad: perType[t.ID],
		})
	}

	recent, err := uc.repos.Movements.List(ctx, entity.MovementFilter{Limit: RecentMovements})
	if err != nil {
		return nil, err
	}
	last := make([]dto.MovementResponse, 0, len(recent))
	for _, m := range recent {
		last = append(last, idx.movement(m))
	}

	return &dto.SummaryResponse{
		MovimientosPorTipo: byType,
		ClientesActivos:    active,
		CajasPrestadas:     total,
		CajasPorTipo:       onLoan,
		UltimosMovimientos: last,
	}, nil
}
