// Package store is the relational persistence layer of the tenancy core.
//
// A Store wraps a *gorm.DB that is either the connection pool or an open
// transaction. Lifecycle operations obtain a transactional Store through
// Transaction and must issue every read and write of the unit of work through
// it.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/config"
)

type Store struct {
	db *gorm.DB
}

// New wraps an existing connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database cfg describes.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	gormCfg := &gorm.Config{
		// Missing rows are reported as NotFound, not logged.
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		// Unique violations surface as gorm.ErrDuplicatedKey on every dialect.
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver() {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	default:
		dialector = sqlite.Open(cfg.URL)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver(), err)
	}

	if cfg.Driver() == "sqlite" {
		// One connection: an in-memory database exists per connection, and
		// sqlite serializes writers regardless.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return New(db), nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithContext returns a Store whose statements carry ctx.
func (s *Store) WithContext(ctx context.Context) *Store {
	return &Store{db: s.db.WithContext(ctx)}
}

// Transaction runs fn inside one database transaction. The transaction is
// rolled back when fn returns an error or panics.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func first[T any](s *Store, entity string, id uint) (*T, error) {
	var row T
	if err := s.db.First(&row, id).Error; err != nil {
		return nil, wrap(entity, id, err)
	}
	return &row, nil
}

func wrap(entity string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return apperr.Internal(entity, err, "query %v", id)
}

func writeErr(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(entity, "%s violates a uniqueness rule", op)
	}
	return apperr.Internal(entity, err, "%s failed", op)
}
