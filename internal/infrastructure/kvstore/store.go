// Package kvstore implementa los repositorios sobre un almacén clave-valor embebido (buntdb).
// Cada colección es una clave cuyo valor es un arreglo JSON de registros.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

// Claves de las colecciones.
const (
	keyCrateTypes = "tipos_cajas"
	keyClients    = "clientes"
	keyMovements  = "movimientos_cajas"
	keyBalances   = "saldos_clientes"
)

// errDuplicateID un insert repite el ID de un registro existente.
var errDuplicateID = errors.New("duplicate id")

var (
	_ repository.TxRunner      = (*Store)(nil)
	_ repository.HealthChecker = (*Store)(nil)
)

// executor da acceso a una transacción de buntdb. En exec los cambios solo se confirman si fn
// devuelve nil; view es de solo lectura.
type executor interface {
	exec(fn func(tx *buntdb.Tx) error) error
	view(fn func(tx *buntdb.Tx) error) error
}

// Store almacén buntdb, volátil o respaldado por archivo.
// buntdb serializa las transacciones de escritura.
type Store struct {
	db *buntdb.DB
}

// New crea un almacén volátil vacío.
func New() *Store {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		// ":memory:" no toca disco.
		panic(fmt.Sprintf("kvstore: abrir en memoria: %v", err))
	}
	return &Store{db: db}
}

// Open crea un almacén respaldado por archivo; si el archivo existe, lo carga.
func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, domain.NewStorageError("open kv file", err)
	}
	return &Store{db: db}, nil
}

// Close libera el archivo.
func (s *Store) Close() error {
	return s.db.Close()
}

// Repos devuelve repositorios en modo autocommit. No usarlos dentro de Run.
func (s *Store) Repos() repository.Repos {
	return reposFor(s)
}

// Run ejecuta fn en una única transacción de escritura; si fn falla, buntdb revierte todo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.exec(func(tx *buntdb.Tx) error {
		return fn(reposFor(&txExecutor{tx: tx}))
	})
}

// Ping falla si el contexto terminó o la base ya se cerró.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.View(func(*buntdb.Tx) error { return nil }); err != nil {
		return domain.NewStorageError("ping", err)
	}
	return nil
}

func (s *Store) exec(fn func(tx *buntdb.Tx) error) error {
	return s.db.Update(fn)
}

func (s *Store) view(fn func(tx *buntdb.Tx) error) error {
	return s.db.View(fn)
}

// txExecutor vista de una transacción ya abierta por Run.
type txExecutor struct {
	tx *buntdb.Tx
}

func (t *txExecutor) exec(fn func(tx *buntdb.Tx) error) error {
	return fn(t.tx)
}

func (t *txExecutor) view(fn func(tx *buntdb.Tx) error) error {
	return fn(t.tx)
}

func reposFor(x executor) repository.Repos {
	return repository.Repos{
		CrateTypes: &CrateTypeRepo{x: x},
		Clients:    &ClientRepo{x: x},
		Movements:  &MovementRepo{x: x},
		Balances:   &BalanceRepo{x: x},
	}
}

func load[T any](tx *buntdb.Tx, key string) ([]T, error) {
	raw, err := tx.Get(key)
	if errors.Is(err, buntdb.ErrNotFound) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError(fmt.Sprintf("get %s", key), err)
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, domain.NewStorageError(fmt.Sprintf("decode %s", key), err)
	}
	return out, nil
}

func save[T any](tx *buntdb.Tx, key string, recs []T) error {
	raw, err := json.Marshal(recs)
	if err != nil {
		return domain.NewStorageError(fmt.Sprintf("encode %s", key), err)
	}
	if _, _, err := tx.Set(key, string(raw), nil); err != nil {
		return domain.NewStorageError(fmt.Sprintf("set %s", key), err)
	}
	return nil
}

// read ejecuta fn en modo lectura.
func read[T any](x executor, key string, fn func(recs []T) error) error {
	return x.view(func(tx *buntdb.Tx) error {
		recs, err := load[T](tx, key)
		if err != nil {
			return err
		}
		return fn(recs)
	})
}

// update carga la colección, aplica fn y guarda el resultado.
func update[T any](x executor, key string, fn func(recs []T) ([]T, error)) error {
	return x.exec(func(tx *buntdb.Tx) error {
		recs, err := load[T](tx, key)
		if err != nil {
			return err
		}
		next, err := fn(recs)
		if err != nil {
			return err
		}
		return save(tx, key, next)
	})
}
