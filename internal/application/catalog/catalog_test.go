package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajas-api/internal/application/catalog"
	"github.com/jhoicas/cajas-api/internal/application/dto"
	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

var fixedNow = time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*catalog.CrateTypeUseCase, *catalog.ClientUseCase, repository.Repos) {
	t.Helper()
	s := kvstore.New()
	gen := ids.NewSequence("c-")
	clock := func() time.Time { return fixedNow }
	return catalog.NewCrateTypeUseCase(s.Repos().CrateTypes, s, gen, clock),
		catalog.NewClientUseCase(s.Repos().Clients, s, gen, clock),
		s.Repos()
}

func addMovement(t *testing.T, repos repository.Repos, clientID, crateTypeID string) {
	t.Helper()
	require.NoError(t, repos.Movements.Append(context.Background(), &entity.Movement{
		ID: "m-1", ClientID: clientID, CrateTypeID: crateTypeID,
		Type: entity.MovementTypeDelivery, Quantity: 1, Date: "2024-03-01", Time: "08:00",
	}))
}

// ──── Tipos de caja ──────────────────────────────────────────────────────────

func TestCrateType_CrearYBuscarSinDistinguirMayusculas(t *testing.T) {
	types, _, repos := setup(t)
	ctx := context.Background()

	created, err := types.Create(ctx, dto.CrateTypeRequest{Codigo: " neg ", Nombre: "Negras", Color: "#000"})
	require.NoError(t, err)
	assert.Equal(t, "neg", created.Codigo)
	assert.True(t, created.Activo, "activo por defecto")
	assert.Equal(t, fixedNow, created.CreatedAt)

	got, err := repos.CrateTypes.GetByCode(ctx, "NEG")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	_, err = types.Create(ctx, dto.CrateTypeRequest{Codigo: "NEG", Nombre: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestCrateType_CamposObligatorios(t *testing.T) {
	types, _, _ := setup(t)
	_, err := types.Create(context.Background(), dto.CrateTypeRequest{Codigo: "  ", Nombre: "Negras"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = types.Create(context.Background(), dto.CrateTypeRequest{Codigo: "NEG"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrateType_ActualizarYDesactivar(t *testing.T) {
	types, _, _ := setup(t)
	ctx := context.Background()
	created, err := types.Create(ctx, dto.CrateTypeRequest{Codigo: "VER", Nombre: "Verdes"})
	require.NoError(t, err)
	other, err := types.Create(ctx, dto.CrateTypeRequest{Codigo: "ORU", Nombre: "Oruro"})
	require.NoError(t, err)

	inactive := false
	updated, err := types.Update(ctx, created.ID, dto.CrateTypeRequest{Codigo: "VER", Nombre: "Verde claro", Activo: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Verde claro", updated.Nombre)
	assert.False(t, updated.Activo)

	_, err = types.Update(ctx, other.ID, dto.CrateTypeRequest{Codigo: "ver", Nombre: "Oruro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = types.Update(ctx, "no-existe", dto.CrateTypeRequest{Codigo: "X", Nombre: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := types.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ORU", list[0].Codigo, "ordenados por código, incluye inactivos")
}

func TestCrateType_Eliminar(t *testing.T) {
	types, clients, repos := setup(t)
	ctx := context.Background()
	used, err := types.Create(ctx, dto.CrateTypeRequest{Codigo: "NEG", Nombre: "Negras"})
	require.NoError(t, err)
	free, err := types.Create(ctx, dto.CrateTypeRequest{Codigo: "VER", Nombre: "Verdes"})
	require.NoError(t, err)
	c, err := clients.Create(ctx, dto.ClientRequest{Nombre: "Doña Rosa"})
	require.NoError(t, err)
	addMovement(t, repos, c.ID, used.ID)

	assert.ErrorIs(t, types.Delete(ctx, used.ID), domain.ErrInUse)
	require.NoError(t, types.Delete(ctx, free.ID))
	assert.ErrorIs(t, types.Delete(ctx, free.ID), domain.ErrNotFound)

	_, err = types.GetByID(ctx, free.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	still, err := types.GetByID(ctx, used.ID)
	require.NoError(t, err)
	assert.Equal(t, "NEG", still.Codigo)
}

func TestCrateType_SeedEsIdempotente(t *testing.T) {
	types, _, _ := setup(t)
	ctx := context.Background()

	first, err := types.Seed(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, []string{"NEG", "VER", "ORU"}, []string{first[0].Codigo, first[1].Codigo, first[2].Codigo})

	second, err := types.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	list, err := types.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCrateType_SeedRespetaCodigoExistente(t *testing.T) {
	types, _, _ := setup(t)
	ctx := context.Background()
	own, err := types.Create(ctx, dto.CrateTypeRequest{Codigo: "ver", Nombre: "Verdes propias"})
	require.NoError(t, err)

	seeded, err := types.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, own.ID, seeded[1].ID)
	assert.Equal(t, "Verdes propias", seeded[1].Nombre)
}

// ──── Clientes ───────────────────────────────────────────────────────────────

func TestClient_CRUD(t *testing.T) {
	_, clients, _ := setup(t)
	ctx := context.Background()

	created, err := clients.Create(ctx, dto.ClientRequest{Nombre: "  Mercado Central ", Contacto: "3001234567"})
	require.NoError(t, err)
	assert.Equal(t, "Mercado Central", created.Nombre)
	assert.True(t, created.Activo)

	_, err = clients.Create(ctx, dto.ClientRequest{Nombre: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	off := false
	updated, err := clients.Update(ctx, created.ID, dto.ClientRequest{Nombre: "Mercado Central", Activo: &off})
	require.NoError(t, err)
	assert.False(t, updated.Activo)
	assert.Empty(t, updated.Contacto)

	again, err := clients.Update(ctx, created.ID, dto.ClientRequest{Nombre: "Mercado Central"})
	require.NoError(t, err)
	assert.False(t, again.Activo, "sin activo se conserva el estado")

	_, err = clients.Update(ctx, "no-existe", dto.ClientRequest{Nombre: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = clients.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_ListaOrdenadaPorNombre(t *testing.T) {
	_, clients, _ := setup(t)
	ctx := context.Background()
	for _, name := range []string{"Zoila", "Abasto Norte", "Mercado Central"} {
		_, err := clients.Create(ctx, dto.ClientRequest{Nombre: name})
		require.NoError(t, err)
	}
	list, err := clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Abasto Norte", list[0].Nombre)
	assert.Equal(t, "Zoila", list[2].Nombre)
}

func TestClient_EliminarConHistorial(t *testing.T) {
	types, clients, repos := setup(t)
	ctx := context.Background()
	neg, err := types.Create(ctx, dto.CrateTypeRequest{Codigo: "NEG", Nombre: "Negras"})
	require.NoError(t, err)
	busy, err := clients.Create(ctx, dto.ClientRequest{Nombre: "Con cajas"})
	require.NoError(t, err)
	idle, err := clients.Create(ctx, dto.ClientRequest{Nombre: "Sin historial"})
	require.NoError(t, err)
	addMovement(t, repos, busy.ID, neg.ID)

	assert.ErrorIs(t, clients.Delete(ctx, busy.ID), domain.ErrInUse)
	require.NoError(t, clients.Delete(ctx, idle.ID))
	assert.ErrorIs(t, clients.Delete(ctx, idle.ID), domain.ErrNotFound)
}
