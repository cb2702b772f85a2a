// Package storage elige el backend de persistencia (PostgreSQL o memoria) según la configuración.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/repository"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/memory"
	"github.com/jhoicas/coffee-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/coffee-stock-api/pkg/config"
)

// ErrMigrationsUnsupported el backend en memoria no tiene esquema que migrar.
var ErrMigrationsUnsupported = errors.New("migrations require STORE_BACKEND=postgres")

// Backend puertos de persistencia listos para inyectar en los casos de uso.
type Backend struct {
	Name      string
	Products  repository.ProductRepository
	Ledger    repository.TransactionRepository
	Analytics repository.AnalyticsRepository
	TxRunner  inventory.TxRunner

	migrate func(ctx context.Context) ([]string, error)
	close   func()
}

// Open construye el backend configurado. Con postgres abre el pool y, si autoMigrate, aplica migraciones.
func Open(ctx context.Context, cfg *config.Config, autoMigrate bool) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return NewMemory(memory.NewStore()), nil
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		b := &Backend{
			Name:      config.BackendPostgres,
			Products:  postgres.NewProductRepository(pool),
			Ledger:    postgres.NewTransactionRepository(pool),
			Analytics: postgres.NewAnalyticsRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			migrate: func(ctx context.Context) ([]string, error) {
				return postgres.Migrate(ctx, pool)
			},
			close: pool.Close,
		}
		if autoMigrate {
			if _, err := b.Migrate(ctx); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return b, nil
	default:
		return nil, fmt.Errorf("storage: backend desconocido %q", cfg.Store.Backend)
	}
}

// NewMemory backend en memoria sobre store; el estado vive lo que viva el proceso.
func NewMemory(store *memory.Store) *Backend {
	return &Backend{
		Name:      config.BackendMemory,
		Products:  memory.NewProductRepository(store),
		Ledger:    memory.NewTransactionRepository(store),
		Analytics: memory.NewAnalyticsRepository(store),
		TxRunner:  memory.NewTxRunner(store),
	}
}

// Migrate aplica las migraciones pendientes y devuelve sus nombres.
func (b *Backend) Migrate(ctx context.Context) ([]string, error) {
	if b.migrate == nil {
		return nil, ErrMigrationsUnsupported
	}
	return b.migrate(ctx)
}

// Close libera las conexiones del backend.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}
