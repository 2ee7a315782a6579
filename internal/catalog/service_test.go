package catalog_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()
	store, err := memory.NewProductCatalog(catalog.DefaultProducts()...)
	require.NoError(t, err)
	return catalog.NewService(store, nil)
}

func TestDefaultProducts(t *testing.T) {
	products := catalog.DefaultProducts()
	require.Len(t, products, 6)
	for _, p := range products {
		assert.Empty(t, p.Validate(), "product %s", p.ID)
	}
	assert.Equal(t, "2499", products[0].UnitPrice.String())
}

func TestServiceList(t *testing.T) {
	svc := newService(t)

	all, err := svc.List(domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	electronics, err := svc.List(domain.ProductFilter{Category: " electronics "})
	require.NoError(t, err)
	assert.Len(t, electronics, 3)

	found, err := svc.List(domain.ProductFilter{Search: "coffee"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "p6", found[0].ID)
}

func TestServiceGet(t *testing.T) {
	svc := newService(t)

	p, err := svc.Get("p4")
	require.NoError(t, err)
	assert.Equal(t, "Travel Backpack", p.Name)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.Get(" ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestServiceAdd(t *testing.T) {
	svc := newService(t)

	p, err := svc.Add(catalog.NewProductInput{
		Name:      "Desk Lamp",
		UnitPrice: decimal.RequireFromString("749.50"),
		Category:  "home",
	})
	require.NoError(t, err)
	_, parseErr := uuid.Parse(p.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, catalog.DefaultImageURL, p.ImageURL)

	stored, err := svc.Get(p.ID)
	require.NoError(t, err)
	assert.True(t, stored.UnitPrice.Equal(decimal.RequireFromString("749.5")))

	_, err = svc.Add(catalog.NewProductInput{Name: "No category", UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrProductCategoryRequired)

	_, err = svc.Add(catalog.NewProductInput{Name: "Negative", Category: "home", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrProductPriceInvalid)
}
