package ledger

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

// parseQuantity acepta solo enteros: "5" sí, "5.0" no.
func parseQuantity(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, domain.ErrInvalidQuantity
	}
	return int(n), nil
}

// catalogIndex clientes y tipos de caja por ID, para unir nombres en los listados.
type catalogIndex struct {
	clients    map[string]*entity.Client
	crateTypes map[string]*entity.CrateType
	typeOrder  []*entity.CrateType
}

func loadCatalog(ctx context.Context, repos repository.Repos) (*catalogIndex, error) {
	clients, err := repos.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	types, err := repos.CrateTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := &catalogIndex{
		clients:    make(map[string]*entity.Client, len(clients)),
		crateTypes: make(map[string]*entity.CrateType, len(types)),
		typeOrder:  types,
	}
	for _, c := range clients {
		idx.clients[c.ID] = c
	}
	for _, t := range types {
		idx.crateTypes[t.ID] = t
	}
	return idx, nil
}

func (idx *catalogIndex) movement(m *entity.Movement) dto.MovementResponse {
	return toMovementResponse(m, idx.clients[m.ClientID], idx.crateTypes[m.CrateTypeID])
}

func (idx *catalogIndex) balance(b *entity.Balance) dto.BalanceResponse {
	out := dto.BalanceResponse{
		ClienteID:  b.ClientID,
		TipoCajaID: b.CrateTypeID,
		Cantidad:   b.Quantity,
		UpdatedAt:  b.UpdatedAt,
	}
	if c := idx.clients[b.ClientID]; c != nil {
		out.ClienteNombre = c.Name
	}
	if t := idx.crateTypes[b.CrateTypeID]; t != nil {
		out.TipoCajaCodigo = t.Code
		out.TipoCajaNombre = t.Name
		out.TipoCajaColor = t.Color
	}
	return out
}

func toMovementResponse(m *entity.Movement, c *entity.Client, t *entity.CrateType) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:            m.ID,
		ClienteID:     m.ClientID,
		TipoCajaID:    m.CrateTypeID,
		Cantidad:      m.Quantity,
		Fecha:         m.Date,
		Hora:          m.Time,
		Tipo:          m.Type,
		Motivo:        m.Reason,
		Observaciones: m.Notes,
		CreatedAt:     m.CreatedAt,
	}
	if c != nil {
		out.ClienteNombre = c.Name
	}
	if t != nil {
		out.TipoCajaCodigo = t.Code
		out.TipoCajaNombre = t.Name
	}
	return out
}
