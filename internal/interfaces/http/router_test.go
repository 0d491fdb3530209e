package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajas-api/internal/application/catalog"
	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/application/ledger"
	"github.com/jhoicas/cajas-api/internal/application/ports"
	"github.com/jhoicas/cajas-api/internal/infrastructure/kvstore"
	apphttp "github.com/jhoicas/cajas-api/internal/interfaces/http"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

type fakeReport struct{ got *ports.BalanceReport }

func (f *fakeReport) GenerateBalanceReport(r *ports.BalanceReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-1.4 fake"), nil
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("sin conexión") }

type testAPI struct {
	app    *fiber.App
	report *fakeReport
	neg    dto.CrateTypeResponse
}

// buildTestApp arma la API completa sobre el almacén en memoria con los tipos por defecto.
func buildTestApp(t *testing.T) *testAPI {
	t.Helper()
	store := kvstore.New()
	repos := store.Repos()
	gen := ids.NewSequence("t-")
	clock := func() time.Time { return fixedNow }
	report := &fakeReport{}

	crateTypes := catalog.NewCrateTypeUseCase(repos.CrateTypes, store, gen, clock)
	seeded, err := crateTypes.Seed(context.Background())
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CrateTypeUC:      crateTypes,
		ClientUC:         catalog.NewClientUseCase(repos.Clients, store, gen, clock),
		RegisterMovement: ledger.NewRegisterMovementUseCase(store, gen, clock, nil, zerolog.Nop()),
		Queries:          ledger.NewQueryUseCase(repos),
		Rebuild:          ledger.NewRebuildUseCase(store, zerolog.Nop()),
		Report:           ledger.NewReportUseCase(repos, report, clock),
		Health:           store,
		Driver:           "memory",
		Log:              zerolog.Nop(),
	})
	return &testAPI{app: app, report: report, neg: seeded[0]}
}

// do lanza la petición y decodifica el cuerpo JSON en out (si no es nil).
func (a *testAPI) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testAPI) createClient(t *testing.T, name string) dto.ClientResponse {
	t.Helper()
	var c dto.ClientResponse
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/clientes", dto.ClientRequest{Nombre: name}, &c))
	return c
}

func movement(clientID, crateTypeID, tipo string, qty any, motivo string) map[string]any {
	return map[string]any{
		"cliente_id": clientID, "tipo_caja_id": crateTypeID, "tipo": tipo,
		"cantidad": qty, "motivo": motivo,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestTiposCajas_CRUD(t *testing.T) {
	api := buildTestApp(t)

	var list []dto.CrateTypeResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/tipos-cajas", nil, &list))
	assert.Len(t, list, 3)

	var created dto.CrateTypeResponse
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/tipos-cajas",
		dto.CrateTypeRequest{Codigo: "AZU", Nombre: "Azules", Color: "#3b82f6"}, &created))

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, api.do(t, http.MethodPost, "/api/tipos-cajas",
		dto.CrateTypeRequest{Codigo: "azu", Nombre: "Otra"}, &errBody))
	assert.Equal(t, "DUPLICATE_CODE", errBody.Code)

	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/tipos-cajas",
		dto.CrateTypeRequest{Codigo: "X"}, &errBody))
	assert.Equal(t, "VALIDATION", errBody.Code)

	var updated dto.CrateTypeResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPut, "/api/tipos-cajas/"+created.ID,
		dto.CrateTypeRequest{Codigo: "AZU", Nombre: "Azul oscuro"}, &updated))
	assert.Equal(t, "Azul oscuro", updated.Nombre)

	assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, "/api/tipos-cajas/"+created.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/tipos-cajas/"+created.ID, nil, &errBody))
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}

func TestClientes_EliminarConMovimientosResponde409(t *testing.T) {
	api := buildTestApp(t)
	c := api.createClient(t, "Doña Rosa")
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/movimientos",
		movement(c.ID, api.neg.ID, "entrega", 2, ""), nil))

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, api.do(t, http.MethodDelete, "/api/clientes/"+c.ID, nil, &errBody))
	assert.Equal(t, "IN_USE", errBody.Code)

	var updated dto.ClientResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPut, "/api/clientes/"+c.ID,
		map[string]any{"nombre": "Doña Rosa", "activo": false}, &updated))
	assert.False(t, updated.Activo)
}

func TestBodyInvalidoResponde400(t *testing.T) {
	api := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_EscenarioPorHTTP(t *testing.T) {
	api := buildTestApp(t)
	c := api.createClient(t, "Doña Rosa")

	var res dto.RegisterMovementResponse
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/movimientos",
		movement(c.ID, api.neg.ID, "entrega", 10, ""), &res))
	assert.Equal(t, 10, res.SaldoNuevo)
	assert.Equal(t, "2024-03-01", res.Movimiento.Fecha)

	// Cantidad como texto numérico también es válida.
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/movimientos",
		movement(c.ID, api.neg.ID, "devolucion", "3", ""), &res))
	assert.Equal(t, 7, res.SaldoNuevo)

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/movimientos",
		movement(c.ID, api.neg.ID, "retiro", 20, "rotas"), &errBody))
	assert.Equal(t, "INSUFFICIENT_BALANCE", errBody.Code)
	assert.Contains(t, errBody.Message, "7")

	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/movimientos",
		movement(c.ID, api.neg.ID, "ajuste", 5, "conteo físico"), &res))
	assert.Equal(t, 5, res.SaldoNuevo)

	var pair dto.PairBalanceResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet,
		"/api/saldos/cliente/"+c.ID+"/tipo/"+api.neg.ID, nil, &pair))
	assert.Equal(t, 5, pair.Cantidad)
}

func TestMovimientos_CodigosDeError(t *testing.T) {
	api := buildTestApp(t)
	c := api.createClient(t, "Mercado Central")

	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{"cantidad cero", movement(c.ID, api.neg.ID, "entrega", 0, ""), "INVALID_QUANTITY"},
		{"cantidad decimal", movement(c.ID, api.neg.ID, "entrega", 2.5, ""), "INVALID_QUANTITY"},
		{"cliente inexistente", movement("nadie", api.neg.ID, "entrega", 1, ""), "UNKNOWN_REFERENCE"},
		{"tipo inválido", movement(c.ID, api.neg.ID, "prestamo", 1, ""), "VALIDATION"},
		{"devolución sin saldo", movement(c.ID, api.neg.ID, "devolucion", 1, ""), "INSUFFICIENT_BALANCE"},
		{"ajuste sin motivo", movement(c.ID, api.neg.ID, "ajuste", 3, ""), "MISSING_REASON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errBody dto.ErrorResponse
			assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/movimientos", tc.body, &errBody))
			assert.Equal(t, tc.code, errBody.Code)
		})
	}

	var list []dto.MovementResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/movimientos", nil, &list))
	assert.Empty(t, list, "ningún rechazo deja movimiento")
}

func TestMovimientos_FiltroResumenYDetalle(t *testing.T) {
	api := buildTestApp(t)
	c1 := api.createClient(t, "Doña Rosa")
	c2 := api.createClient(t, "Mercado Central")
	for _, body := range []map[string]any{
		movement(c1.ID, api.neg.ID, "entrega", 4, ""),
		movement(c2.ID, api.neg.ID, "entrega", 6, ""),
		movement(c1.ID, api.neg.ID, "devolucion", 1, ""),
	} {
		require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/movimientos", body, nil))
	}

	var list []dto.MovementResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet,
		"/api/movimientos?tipo=entrega&cliente_id="+c1.ID, nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Doña Rosa", list[0].ClienteNombre)
	assert.Equal(t, "NEG", list[0].TipoCajaCodigo)

	var upper []dto.MovementResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/movimientos?tipo=Entrega", nil, &upper))
	assert.Len(t, upper, 2)

	var summary dto.SummaryResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/movimientos/resumen", nil, &summary))
	assert.Equal(t, 2, summary.MovimientosPorTipo["entrega"])
	assert.Equal(t, 9, summary.CajasPrestadas)
	assert.Len(t, summary.UltimosMovimientos, 3)

	var one dto.MovementResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/movimientos/"+list[0].ID, nil, &one))
	assert.Equal(t, 4, one.Cantidad)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/movimientos/no-existe", nil, nil))

	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodGet, "/api/movimientos?fecha_desde=ayer", nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldos
// ──────────────────────────────────────────────────────────────────────────────

func TestSaldos_ListadosRecalculoYReporte(t *testing.T) {
	api := buildTestApp(t)
	c := api.createClient(t, "Doña Rosa")
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/movimientos",
		movement(c.ID, api.neg.ID, "entrega", 8, ""), nil))

	var all []dto.BalanceResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/saldos", nil, &all))
	require.Len(t, all, 1)
	assert.Equal(t, "#1e293b", all[0].TipoCajaColor)

	var mine []dto.BalanceResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/saldos/cliente/"+c.ID, nil, &mine))
	assert.Len(t, mine, 1)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/saldos/cliente/nadie", nil, nil))

	var rebuilt dto.RebuildResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/saldos/recalcular?dry_run=true", nil, &rebuilt))
	assert.Equal(t, 1, rebuilt.Pares)
	assert.Empty(t, rebuilt.Corregidos)

	req := httptest.NewRequest(http.MethodGet, "/api/saldos/reporte", nil)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	require.NotNil(t, api.report.got)
	require.Len(t, api.report.got.Rows, 1)
	assert.Equal(t, 8, api.report.got.Rows[0].Total())
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	api := buildTestApp(t)
	var h dto.HealthResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/health", nil, &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "memory", h.Driver)
}

func TestHealth_AlmacenCaidoResponde503(t *testing.T) {
	app := fiber.New()
	app.Get("/api/health", apphttp.NewHealthHandler(downStore{}, "postgres").Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
