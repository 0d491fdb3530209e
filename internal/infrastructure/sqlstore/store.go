// Package sqlstore implementa los repositorios con GORM sobre SQLite, para despliegues de un solo equipo.
package sqlstore

import (
	"context"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/cajas-api/internal/domain"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

var (
	_ repository.TxRunner      = (*Store)(nil)
	_ repository.HealthChecker = (*Store)(nil)
)

// Store almacén SQLite. Usa una sola conexión: las unidades de trabajo quedan serializadas.
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path y migra el esquema. ":memory:" sirve para tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, domain.NewStorageError("open sqlite", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, domain.NewStorageError("open sqlite", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&crateTypeModel{}, &clientModel{}, &movementModel{}, &balanceModel{}); err != nil {
		return nil, domain.NewStorageError("migrate sqlite", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión subyacente.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Repos devuelve repositorios en modo autocommit. No usarlos dentro de Run.
func (s *Store) Repos() repository.Repos {
	return reposFor(s.db)
}

// Run ejecuta fn dentro de una transacción GORM.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
	return err
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return domain.NewStorageError("ping sqlite", err)
	}
	return domain.NewStorageError("ping sqlite", sqlDB.PingContext(ctx))
}

func reposFor(db *gorm.DB) repository.Repos {
	return repository.Repos{
		CrateTypes: &CrateTypeRepo{db: db},
		Clients:    &ClientRepo{db: db},
		Movements:  &MovementRepo{db: db},
		Balances:   &BalanceRepo{db: db},
	}
}

// codeKeyColumn columna con índice único de crateTypeModel.
const codeKeyColumn = "tipos_cajas.codigo_clave"

// storageErr traduce errores del driver a errores de dominio. Solo la unicidad de codigo_clave es un
// código duplicado; otra violación de unicidad (una llave primaria) queda como fallo de almacenamiento.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isCodeKeyViolation(err) {
		return domain.ErrDuplicateCode
	}
	return domain.NewStorageError(op, err)
}

// isCodeKeyViolation SQLite solo identifica la columna en el mensaje: "UNIQUE constraint failed: tabla.columna".
func isCodeKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique && strings.Contains(sqliteErr.Error(), codeKeyColumn)
}
