package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// runtimeDependencies — хранилища, выбранные по StorageDriver.
type runtimeDependencies struct {
	catalog         domain.ProductCatalog
	carts           domain.CartRepository
	orders          domain.OrderRepository
	outboxRepo      domain.OutboxRepository
	idempotencyRepo domain.IdempotencyRepository
	storageChecker  healthcheck.Checker
	closeFn         func() error
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}

// initRuntimeDependencies открывает хранилище и при необходимости заполняет каталог.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	var (
		deps *runtimeDependencies
		err  error
	)
	switch cfg.StorageDriver {
	case "", StorageDriverMemory:
		deps, err = initMemoryDependencies()
	case StorageDriverPostgres:
		deps, err = initPostgresDependencies(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.SeedCatalog {
		added, err := seedCatalog(deps.catalog, catalog.DefaultProducts())
		if err != nil {
			deps.close(logger)
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		if added > 0 {
			logger.WithField("products", added).Info("catalog seeded")
		}
	}

	return deps, nil
}

func initMemoryDependencies() (*runtimeDependencies, error) {
	products, err := memory.NewProductCatalog()
	if err != nil {
		return nil, err
	}
	return &runtimeDependencies{
		catalog:         products,
		carts:           memory.NewCartRepository(),
		orders:          memory.NewOrderRepository(),
		outboxRepo:      memory.NewOutboxRepository(),
		idempotencyRepo: memory.NewIdempotencyRepository(),
		storageChecker:  healthcheck.NewSimpleChecker("storage", func() error { return nil }),
	}, nil
}

func initPostgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if cfg.PostgresDSN == "" {
		return nil, errors.New("postgres dsn is required for postgres storage driver")
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if cfg.PostgresAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres migrations applied")
	}

	return &runtimeDependencies{
		catalog:         postgres.NewProductCatalog(store),
		carts:           postgres.NewCartRepository(store),
		orders:          postgres.NewOrderRepository(store),
		outboxRepo:      postgres.NewOutboxRepository(store),
		idempotencyRepo: postgres.NewIdempotencyRepository(store),
		storageChecker: healthcheck.NewSimpleChecker("storage", func() error {
			return store.Ping(context.Background())
		}),
		closeFn: store.Close,
	}, nil
}

// seedCatalog добавляет товары, которых ещё нет. Повторный запуск ничего не меняет.
func seedCatalog(products domain.ProductCatalog, seed []domain.Product) (int, error) {
	added := 0
	for _, p := range seed {
		err := products.Add(p)
		switch {
		case err == nil:
			added++
		case errors.Is(err, domain.ErrProductAlreadyExists):
		default:
			return added, fmt.Errorf("add %s: %w", p.ID, err)
		}
	}
	return added, nil
}
