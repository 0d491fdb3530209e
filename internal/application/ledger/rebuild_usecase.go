package ledger

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/ledger"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

// RebuildUseCase recalcula la tabla de saldos desde el log de movimientos.
type RebuildUseCase struct {
	txRunner repository.TxRunner
	log      zerolog.Logger
}

// NewRebuildUseCase construye el caso de uso.
func NewRebuildUseCase(txRunner repository.TxRunner, log zerolog.Logger) *RebuildUseCase {
	return &RebuildUseCase{txRunner: txRunner, log: log}
}

// Verify compara cada saldo guardado con el fold de su historial, sin escribir.
func (uc *RebuildUseCase) Verify(ctx context.Context) (*dto.RebuildResponse, error) {
	return uc.run(ctx, false)
}

// Rebuild corrige los saldos que difieran del fold de su historial.
func (uc *RebuildUseCase) Rebuild(ctx context.Context) (*dto.RebuildResponse, error) {
	res, err := uc.run(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(res.Corregidos) > 0 {
		uc.log.Warn().Int("corregidos", len(res.Corregidos)).Msg("saldos recalculados desde el historial")
	}
	return res, nil
}

func (uc *RebuildUseCase) run(ctx context.Context, fix bool) (*dto.RebuildResponse, error) {
	res := &dto.RebuildResponse{Corregidos: []dto.BalanceDriftDTO{}}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		movs, err := repos.Movements.ListAll(ctx)
		if err != nil {
			return err
		}
		stored, err := repos.Balances.List(ctx)
		if err != nil {
			return err
		}

		want := ledger.FoldAll(movs)
		have := make(map[entity.PairKey]int, len(stored))
		for _, b := range stored {
			have[b.Key()] = b.Quantity
			if _, ok := want[b.Key()]; !ok {
				want[b.Key()] = 0 // fila sin historial
			}
		}

		keys := make([]entity.PairKey, 0, len(want))
		for k := range want {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].ClientID != keys[j].ClientID {
				return keys[i].ClientID < keys[j].ClientID
			}
			return keys[i].CrateTypeID < keys[j].CrateTypeID
		})

		res.Pares = len(keys)
		res.Movimientos = len(movs)
		res.Corregidos = res.Corregidos[:0]
		for _, k := range keys {
			got, ok := have[k]
			if ok && got == want[k] {
				continue
			}
			res.Corregidos = append(res.Corregidos, dto.BalanceDriftDTO{
				ClienteID: k.ClientID, TipoCajaID: k.CrateTypeID, Guardado: got, Calculado: want[k],
			})
			if fix {
				if err := repos.Balances.Put(ctx, k.ClientID, k.CrateTypeID, want[k]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
