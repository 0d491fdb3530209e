// Package ledger contiene los casos de uso del libro de préstamos: registro de movimientos,
// consultas de saldos, resumen, recálculo y reporte.
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/application/ports"
	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/ledger"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

// RegisterMovementUseCase registra movimientos de cajas de forma transaccional:
// bloqueo del saldo del par, validación, alta en el log y recálculo del saldo.
type RegisterMovementUseCase struct {
	txRunner  repository.TxRunner
	ids       ids.Generator
	now       func() time.Time
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. clock nil = time.Now; publisher nil = sin eventos.
func NewRegisterMovementUseCase(
	txRunner repository.TxRunner,
	gen ids.Generator,
	clock func() time.Time,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	if clock == nil {
		clock = time.Now
	}
	if publisher == nil {
		publisher = ports.NoopPublisher{}
	}
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		ids:       gen,
		now:       clock,
		publisher: publisher,
		log:       log,
	}
}

// Register valida y registra un movimiento. Un rechazo no deja rastro: ni movimiento ni cambio de saldo.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	m, err := uc.buildMovement(in)
	if err != nil {
		return nil, err
	}

	var (
		before, after int
		refs          ledger.References
	)
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		if refs, err = loadReferences(ctx, repos, m); err != nil {
			return err
		}

		// Sin referencias válidas no hay par que bloquear; Validate rechaza igual.
		before = 0
		if refs.Client != nil && refs.Client.Active && refs.CrateType != nil && refs.CrateType.Active {
			if before, err = repos.Balances.GetForUpdate(ctx, m.ClientID, m.CrateTypeID); err != nil {
				return err
			}
		}
		if err := ledger.Validate(m, before, refs); err != nil {
			return err
		}

		m.ID = uc.ids.NewID()
		m.CreatedAt = uc.now().UTC()
		if err := repos.Movements.Append(ctx, m); err != nil {
			return err
		}

		// Recalcular desde el historial cubre también movimientos con fecha anterior a otros ya registrados.
		history, err := repos.Movements.ListByPair(ctx, m.ClientID, m.CrateTypeID)
		if err != nil {
			return err
		}
		after = ledger.Fold(history)
		return repos.Balances.Put(ctx, m.ClientID, m.CrateTypeID, after)
	})
	if err != nil {
		uc.log.Debug().Err(err).
			Str("tipo", m.Type).Str("cliente_id", m.ClientID).Str("tipo_caja_id", m.CrateTypeID).
			Int("cantidad", m.Quantity).Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("id", m.ID).Str("tipo", m.Type).Str("cliente_id", m.ClientID).Str("tipo_caja_id", m.CrateTypeID).
		Int("cantidad", m.Quantity).Int("saldo_anterior", before).Int("saldo_nuevo", after).
		Msg("movimiento registrado")

	ev := ports.MovementEvent{
		ID: m.ID, Type: m.Type, ClientID: m.ClientID, CrateTypeID: m.CrateTypeID, Quantity: m.Quantity,
		BalanceBefore: before, BalanceAfter: after, Date: m.Date, Time: m.Time, OccurredAt: m.CreatedAt,
	}
	if err := uc.publisher.PublishMovement(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("id", m.ID).Msg("no se pudo publicar el evento del movimiento")
	}

	return &dto.RegisterMovementResponse{
		Movimiento:    toMovementResponse(m, refs.Client, refs.CrateType),
		SaldoAnterior: before,
		SaldoNuevo:    after,
	}, nil
}

// buildMovement normaliza la entrada; fecha y hora vacías toman el reloj inyectado.
func (uc *RegisterMovementUseCase) buildMovement(in dto.RegisterMovementRequest) (*entity.Movement, error) {
	qty, err := parseQuantity(in.Cantidad.String())
	if err != nil {
		return nil, err
	}
	now := uc.now()
	m := &entity.Movement{
		ClientID:    strings.TrimSpace(in.ClienteID),
		CrateTypeID: strings.TrimSpace(in.TipoCajaID),
		Quantity:    qty,
		Date:        strings.TrimSpace(in.Fecha),
		Time:        strings.TrimSpace(in.Hora),
		Type:        strings.ToLower(strings.TrimSpace(in.Tipo)),
		Reason:      strings.TrimSpace(in.Motivo),
		Notes:       strings.TrimSpace(in.Observaciones),
	}
	if m.Date == "" {
		m.Date = now.Format(entity.DateLayout)
	} else if !entity.ValidDate(m.Date) {
		return nil, domain.ErrInvalidInput
	}
	if m.Time == "" {
		m.Time = now.Format(entity.TimeLayout)
	} else if !entity.ValidTime(m.Time) {
		return nil, domain.ErrInvalidInput
	}
	return m, nil
}

func loadReferences(ctx context.Context, repos repository.Repos, m *entity.Movement) (ledger.References, error) {
	var refs ledger.References
	if m.ClientID != "" {
		c, err := repos.Clients.GetByID(ctx, m.ClientID)
		if err != nil {
			return refs, err
		}
		refs.Client = c
	}
	if m.CrateTypeID != "" {
		t, err := repos.CrateTypes.GetByID(ctx, m.CrateTypeID)
		if err != nil {
			return refs, err
		}
		refs.CrateType = t
	}
	return refs, nil
}
