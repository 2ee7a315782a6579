package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productCatalogInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
	order []string
}

// NewProductCatalog создаёт каталог в памяти, опционально заполненный товарами.
func NewProductCatalog(seed ...domain.Product) (domain.ProductCatalog, error) {
	c := &productCatalogInMemory{items: make(map[string]domain.Product, len(seed))}
	for _, p := range seed {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *productCatalogInMemory) Get(id string) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (c *productCatalogInMemory) List(filter domain.ProductFilter) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		p := c.items[id]
		if filter.Match(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (c *productCatalogInMemory) Add(product domain.Product) error {
	if errs := product.Validate(); len(errs) > 0 {
		return errs[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[product.ID]; exists {
		return domain.ErrProductAlreadyExists
	}
	c.items[product.ID] = product
	c.order = append(c.order, product.ID)
	return nil
}

var _ domain.ProductCatalog = (*productCatalogInMemory)(nil)
