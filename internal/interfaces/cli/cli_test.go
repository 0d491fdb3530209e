package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajas-api/internal/application/catalog"
	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/application/ledger"
	"github.com/jhoicas/cajas-api/internal/application/ports"
	"github.com/jhoicas/cajas-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/cajas-api/internal/infrastructure/storage"
	"github.com/jhoicas/cajas-api/internal/interfaces/cli"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

type fakePDF struct{}

func (fakePDF) GenerateBalanceReport(*ports.BalanceReport) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

type harness struct {
	env   *cli.Env
	store *kvstore.Store
	out   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := kvstore.New()
	out := &bytes.Buffer{}
	return &harness{
		store: store,
		out:   out,
		env: &cli.Env{
			Backend:   &storage.Backend{Driver: "memory", Repos: store.Repos(), Runner: store, Health: store},
			Generator: fakePDF{},
			IDs:       ids.NewSequence("cli-"),
			Clock:     func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) },
			Log:       zerolog.Nop(),
			Out:       out,
			Err:       &bytes.Buffer{},
		},
	}
}

// run ejecuta cajasctl con los argumentos dados sobre un commander aislado.
func (h *harness) run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("cajasctl", flag.ContinueOnError)
	cdr := subcommands.NewCommander(fs, "cajasctl")
	cli.Register(cdr, h.env)
	require.NoError(t, fs.Parse(args))
	return cdr.Execute(context.Background())
}

// deliver registra una entrega de qty cajas NEG a un cliente nuevo.
func (h *harness) deliver(t *testing.T, clientName string, qty int) (clientID, crateTypeID string) {
	t.Helper()
	ctx := context.Background()
	repos := h.store.Repos()
	types, err := catalog.NewCrateTypeUseCase(repos.CrateTypes, h.store, h.env.IDs, h.env.Clock).Seed(ctx)
	require.NoError(t, err)
	c, err := catalog.NewClientUseCase(repos.Clients, h.store, h.env.IDs, h.env.Clock).
		Create(ctx, dto.ClientRequest{Nombre: clientName})
	require.NoError(t, err)

	reg := ledger.NewRegisterMovementUseCase(h.store, h.env.IDs, h.env.Clock, nil, zerolog.Nop())
	_, err = reg.Register(ctx, dto.RegisterMovementRequest{
		ClienteID: c.ID, TipoCajaID: types[0].ID, Tipo: "entrega", Cantidad: json.Number(strconv.Itoa(qty)),
	})
	require.NoError(t, err)
	return c.ID, types[0].ID
}

func TestSeed_EsIdempotente(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "seed"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "seed"))

	list, err := h.store.Repos().CrateTypes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Contains(t, h.out.String(), "NEG\tNegras")
}

func TestSaldos_TablaMarkdown(t *testing.T) {
	h := newHarness(t)
	h.deliver(t, "Doña Rosa", 10)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "saldos", "-raw"))
	out := h.out.String()
	assert.Contains(t, out, "| Doña Rosa | NEG | 10 |")
	assert.Contains(t, out, "| **Total** | | **10** |")
}

func TestSaldos_ClienteInexistenteFalla(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, subcommands.ExitFailure, h.run(t, "saldos", "-raw", "-cliente", "nadie"))
}

func TestVerifyYRebuild(t *testing.T) {
	h := newHarness(t)
	clientID, crateTypeID := h.deliver(t, "Doña Rosa", 10)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "verify"))

	require.NoError(t, h.store.Repos().Balances.Put(context.Background(), clientID, crateTypeID, 3))
	assert.Equal(t, subcommands.ExitFailure, h.run(t, "verify"))
	assert.Contains(t, h.out.String(), "guardado 3, calculado 10")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "rebuild", "-dry-run"))
	got, err := h.store.Repos().Balances.Get(context.Background(), clientID, crateTypeID)
	require.NoError(t, err)
	assert.Equal(t, 3, got, "dry-run no corrige")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "rebuild"))
	got, err = h.store.Repos().Balances.Get(context.Background(), clientID, crateTypeID)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestReporte_EscribeElPDF(t *testing.T) {
	h := newHarness(t)
	h.deliver(t, "Doña Rosa", 10)
	path := filepath.Join(t.TempDir(), "saldos.pdf")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "reporte", "-o", path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
