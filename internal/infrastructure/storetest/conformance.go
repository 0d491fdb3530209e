// Package storetest contiene la batería de pruebas común a todos los adaptadores de almacenamiento.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/entity"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

// Backend un almacén listo para usar: repos en autocommit más el runner de unidades de trabajo.
type Backend struct {
	Repos  repository.Repos
	Runner repository.TxRunner
}

// Factory crea un almacén vacío por subtest.
type Factory func(t *testing.T) Backend

var errRollback = errors.New("rollback")

// Run ejecuta la batería completa contra el adaptador que construye newBackend.
func Run(t *testing.T, newBackend Factory) {
	t.Run("TiposDeCaja", func(t *testing.T) { testCrateTypes(t, newBackend(t)) })
	t.Run("Clientes", func(t *testing.T) { testClients(t, newBackend(t)) })
	t.Run("Movimientos", func(t *testing.T) { testMovements(t, newBackend(t)) })
	t.Run("Saldos", func(t *testing.T) { testBalances(t, newBackend(t)) })
	t.Run("IDRepetidoNoEsCodigoDuplicado", func(t *testing.T) { testDuplicateID(t, newBackend(t)) })
	t.Run("RollbackNoDejaRastro", func(t *testing.T) { testRollback(t, newBackend(t)) })
	t.Run("EscritoresConcurrentesDelMismoPar", func(t *testing.T) { testConcurrentPair(t, newBackend(t)) })
}

func now() time.Time { return time.Now().UTC().Truncate(time.Second) }

func newCrateType(code string) *entity.CrateType {
	return &entity.CrateType{ID: ids.New(), Code: code, Name: "Tipo " + code, Color: "#000000", Active: true, CreatedAt: now(), UpdatedAt: now()}
}

func newClient(name string) *entity.Client {
	return &entity.Client{ID: ids.New(), Name: name, Active: true, CreatedAt: now(), UpdatedAt: now()}
}

func newMovement(c *entity.Client, ct *entity.CrateType, tipo string, qty int, fecha, hora string) *entity.Movement {
	return &entity.Movement{
		ClientID: c.ID, CrateTypeID: ct.ID, Quantity: qty, Type: tipo,
		Date: fecha, Time: hora, CreatedAt: now(),
	}
}

func testCrateTypes(t *testing.T, b Backend) {
	ctx := context.Background()
	repo := b.Repos.CrateTypes

	neg := newCrateType("NEG")
	require.NoError(t, repo.Create(ctx, neg))
	require.NoError(t, repo.Create(ctx, newCrateType("ORU")))

	err := repo.Create(ctx, newCrateType("neg"))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode, "el código no distingue mayúsculas")

	got, err := repo.GetByCode(ctx, "neg")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, neg.ID, got.ID)
	assert.Equal(t, "NEG", got.Code)

	missing, err := repo.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "NEG", list[0].Code)
	assert.Equal(t, "ORU", list[1].Code)

	// Desactivado sigue ocupando el código.
	neg.Active = false
	neg.Name = "Negras"
	require.NoError(t, repo.Update(ctx, neg))
	got, err = repo.GetByID(ctx, neg.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "Negras", got.Name)
	assert.ErrorIs(t, repo.Create(ctx, newCrateType("Neg")), domain.ErrDuplicateCode)

	oru, err := repo.GetByCode(ctx, "ORU")
	require.NoError(t, err)
	oru.Code = "nEg"
	assert.ErrorIs(t, repo.Update(ctx, oru), domain.ErrDuplicateCode)

	assert.ErrorIs(t, repo.Update(ctx, newCrateType("VER")), domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, neg.ID))
	assert.ErrorIs(t, repo.Delete(ctx, neg.ID), domain.ErrNotFound)
	got, err = repo.GetByID(ctx, neg.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testClients(t *testing.T, b Backend) {
	ctx := context.Background()
	repo := b.Repos.Clients

	zeta := newClient("Zeta")
	alfa := newClient("Alfa")
	alfa.Contact = "70000000"
	require.NoError(t, repo.Create(ctx, zeta))
	require.NoError(t, repo.Create(ctx, alfa))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa", list[0].Name)
	assert.Equal(t, "70000000", list[0].Contact)

	zeta.Active = false
	require.NoError(t, repo.Update(ctx, zeta))
	got, err := repo.GetByID(ctx, zeta.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Active)

	assert.ErrorIs(t, repo.Update(ctx, newClient("X")), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, zeta.ID))
	assert.ErrorIs(t, repo.Delete(ctx, zeta.ID), domain.ErrNotFound)
}

// testDuplicateID solo un código de tipo de caja repetido es ErrDuplicateCode; un ID repetido es un fallo
// del almacén.
func testDuplicateID(t *testing.T, b Backend) {
	ctx := context.Background()
	ct := newCrateType("NEG")
	require.NoError(t, b.Repos.CrateTypes.Create(ctx, ct))
	again := newCrateType("VER")
	again.ID = ct.ID
	err := b.Repos.CrateTypes.Create(ctx, again)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrDuplicateCode)

	c := newClient("Doña Rosa")
	require.NoError(t, b.Repos.Clients.Create(ctx, c))
	twin := newClient("Otra")
	twin.ID = c.ID
	err = b.Repos.Clients.Create(ctx, twin)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrDuplicateCode)

	m := newMovement(c, ct, entity.MovementTypeDelivery, 1, "2024-03-01", "08:00")
	m.ID = ids.New()
	require.NoError(t, b.Repos.Movements.Append(ctx, m))
	dup := newMovement(c, ct, entity.MovementTypeDelivery, 2, "2024-03-01", "09:00")
	dup.ID = m.ID
	err = b.Repos.Movements.Append(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrDuplicateCode)

	all, err := b.Repos.Movements.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testMovements(t *testing.T, b Backend) {
	ctx := context.Background()
	c1, c2 := newClient("C1"), newClient("C2")
	neg, ver := newCrateType("NEG"), newCrateType("VER")
	require.NoError(t, b.Repos.Clients.Create(ctx, c1))
	require.NoError(t, b.Repos.Clients.Create(ctx, c2))
	require.NoError(t, b.Repos.CrateTypes.Create(ctx, neg))
	require.NoError(t, b.Repos.CrateTypes.Create(ctx, ver))

	repo := b.Repos.Movements
	seed := []*entity.Movement{
		newMovement(c1, neg, entity.MovementTypeDelivery, 10, "2024-03-01", "08:00"),
		newMovement(c1, neg, entity.MovementTypeReturn, 3, "2024-03-02", "09:30"),
		newMovement(c1, ver, entity.MovementTypeDelivery, 5, "2024-03-02", "10:00"),
		newMovement(c2, neg, entity.MovementTypeDelivery, 7, "2024-03-03", "07:15"),
		newMovement(c1, neg, entity.MovementTypeDiscard, 1, "2024-03-04", "12:00"),
	}
	seed[4].Reason = "rota"
	seed[4].Notes = "golpe en el camión"
	for _, m := range seed {
		require.NoError(t, repo.Append(ctx, m))
		assert.NotEmpty(t, m.ID, "Append asigna ID")
	}

	got, err := repo.GetByID(ctx, seed[4].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rota", got.Reason)
	assert.Equal(t, "golpe en el camión", got.Notes)
	assert.Equal(t, "2024-03-04", got.Date)
	assert.Equal(t, "12:00", got.Time)

	missing, err := repo.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.List(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, seed[4].ID, all[0].ID, "más reciente primero")
	assert.Equal(t, seed[0].ID, all[4].ID)

	byType, err := repo.List(ctx, entity.MovementFilter{Type: entity.MovementTypeDelivery, ClientID: c1.ID})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byRange, err := repo.List(ctx, entity.MovementFilter{DateFrom: "2024-03-02", DateTo: "2024-03-03"})
	require.NoError(t, err)
	assert.Len(t, byRange, 3)

	limited, err := repo.List(ctx, entity.MovementFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	pair, err := repo.ListByPair(ctx, c1.ID, neg.ID)
	require.NoError(t, err)
	assert.Len(t, pair, 3)

	everything, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, everything, 5)

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[entity.MovementTypeDelivery])
	assert.Equal(t, 1, counts[entity.MovementTypeReturn])
	assert.Equal(t, 1, counts[entity.MovementTypeDiscard])

	n, err := repo.CountByClient(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.CountByCrateType(ctx, ver.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testBalances(t *testing.T, b Backend) {
	ctx := context.Background()
	c1, c2 := newClient("C1"), newClient("C2")
	neg, ver := newCrateType("NEG"), newCrateType("VER")
	require.NoError(t, b.Repos.Clients.Create(ctx, c1))
	require.NoError(t, b.Repos.Clients.Create(ctx, c2))
	require.NoError(t, b.Repos.CrateTypes.Create(ctx, neg))
	require.NoError(t, b.Repos.CrateTypes.Create(ctx, ver))

	repo := b.Repos.Balances
	qty, err := repo.Get(ctx, c1.ID, neg.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, qty, "un par sin fila tiene saldo 0")

	require.NoError(t, repo.Put(ctx, c1.ID, neg.ID, 7))
	require.NoError(t, repo.Put(ctx, c1.ID, neg.ID, 4))
	require.NoError(t, repo.Put(ctx, c1.ID, ver.ID, 2))
	require.NoError(t, repo.Put(ctx, c2.ID, neg.ID, 9))

	qty, err = repo.Get(ctx, c1.ID, neg.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, qty)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.ListByClient(ctx, c1.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, bal := range mine {
		assert.Equal(t, c1.ID, bal.ClientID)
	}
}

func testRollback(t *testing.T, b Backend) {
	ctx := context.Background()
	c := newClient("C1")
	neg := newCrateType("NEG")
	require.NoError(t, b.Repos.Clients.Create(ctx, c))
	require.NoError(t, b.Repos.CrateTypes.Create(ctx, neg))

	err := b.Runner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Movements.Append(ctx, newMovement(c, neg, entity.MovementTypeDelivery, 5, "2024-01-01", "08:00")); err != nil {
			return err
		}
		if err := repos.Balances.Put(ctx, c.ID, neg.ID, 5); err != nil {
			return err
		}
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)

	movs, err := b.Repos.Movements.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs)
	qty, err := b.Repos.Balances.Get(ctx, c.ID, neg.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	require.NoError(t, b.Runner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Movements.Append(ctx, newMovement(c, neg, entity.MovementTypeDelivery, 5, "2024-01-01", "08:00")); err != nil {
			return err
		}
		return repos.Balances.Put(ctx, c.ID, neg.ID, 5)
	}))
	qty, err = b.Repos.Balances.Get(ctx, c.ID, neg.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)
}

// testConcurrentPair 20 unidades de trabajo restan 1 de un saldo 10 con lectura bloqueante:
// exactamente 10 deben lograrlo y el saldo nunca baja de 0.
func testConcurrentPair(t *testing.T, b Backend) {
	ctx := context.Background()
	c := newClient("C1")
	neg := newCrateType("NEG")
	require.NoError(t, b.Repos.Clients.Create(ctx, c))
	require.NoError(t, b.Repos.CrateTypes.Create(ctx, neg))
	require.NoError(t, b.Repos.Balances.Put(ctx, c.ID, neg.ID, 10))

	errEmpty := errors.New("sin saldo")
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := b.Runner.Run(ctx, func(repos repository.Repos) error {
				qty, err := repos.Balances.GetForUpdate(ctx, c.ID, neg.ID)
				if err != nil {
					return err
				}
				if qty < 1 {
					return errEmpty
				}
				m := newMovement(c, neg, entity.MovementTypeReturn, 1, "2024-01-01", fmt.Sprintf("08:%02d", i))
				if err := repos.Movements.Append(ctx, m); err != nil {
					return err
				}
				return repos.Balances.Put(ctx, c.ID, neg.ID, qty-1)
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, errEmpty)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	qty, err := b.Repos.Balances.Get(ctx, c.ID, neg.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
	movs, err := b.Repos.Movements.ListByPair(ctx, c.ID, neg.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 10)
}
