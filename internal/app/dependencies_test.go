package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	deps, err := initRuntimeDependencies(context.Background(), cfg, log.WithField("test", "memory-storage"))
	require.NoError(t, err)
	defer deps.close(log.WithField("test", "memory-storage"))

	require.NotNil(t, deps.catalog)
	require.NotNil(t, deps.carts)
	require.NotNil(t, deps.orders)
	require.NotNil(t, deps.outboxRepo)
	require.NotNil(t, deps.idempotencyRepo)
	require.Equal(t, healthcheck.StatusHealthy, deps.storageChecker.Check().Status)

	products, err := deps.catalog.List(domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, len(catalog.DefaultProducts()))
}

func TestInitRuntimeDependencies_WithoutSeed(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.SeedCatalog = false
	deps, err := initRuntimeDependencies(context.Background(), cfg, nil)
	require.NoError(t, err)

	products, err := deps.catalog.List(domain.ProductFilter{})
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestInitRuntimeDependencies_IndependentInstances(t *testing.T) {
	t.Parallel()

	deps1, err := initRuntimeDependencies(context.Background(), DefaultConfig(), nil)
	require.NoError(t, err)
	deps2, err := initRuntimeDependencies(context.Background(), DefaultConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, deps1.carts.Save(domain.Cart{SessionID: "s1", Items: []domain.CartItem{{ProductID: "p1", Quantity: 1}}}))
	_, err = deps2.carts.Get("s1")
	require.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	require.Error(t, err)
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	require.ErrorContains(t, err, "unsupported storage driver")
}

func TestSeedCatalog_SkipsExisting(t *testing.T) {
	t.Parallel()

	seed := []domain.Product{
		{ID: "p1", Name: "One", Category: "c", UnitPrice: decimal.NewFromInt(1)},
		{ID: "p2", Name: "Two", Category: "c", UnitPrice: decimal.NewFromInt(2)},
	}
	products, err := memory.NewProductCatalog(seed[0])
	require.NoError(t, err)

	added, err := seedCatalog(products, seed)
	require.NoError(t, err)
	require.Equal(t, 1, added)

	added, err = seedCatalog(products, seed)
	require.NoError(t, err)
	require.Zero(t, added)

	_, err = seedCatalog(products, []domain.Product{{ID: "bad"}})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}
