package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productCatalog struct {
	store *Store
}

// NewProductCatalog создаёт PostgreSQL-реализацию ProductCatalog.
func NewProductCatalog(store *Store) domain.ProductCatalog {
	return &productCatalog{store: store}
}

func (c *productCatalog) Get(id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var p domain.Product
	err := c.store.db.QueryRowContext(ctx, `
		SELECT id, name, unit_price, category, description, image_url, created_at
		FROM products
		WHERE id = $1
	`, strings.TrimSpace(id)).Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Category, &p.Description, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

// List фильтрует по категории в SQL, а поиск по подстроке выполняет
// domain.ProductFilter, чтобы семантика совпадала с in-memory каталогом.
func (c *productCatalog) List(filter domain.ProductFilter) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, name, unit_price, category, description, image_url, created_at
		FROM products
	`
	var args []any
	if filter.Category != "" {
		query += " WHERE category = $1"
		args = append(args, filter.Category)
	}
	query += " ORDER BY seq ASC"

	rows, err := c.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Category, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		if filter.Match(p) {
			products = append(products, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (c *productCatalog) Add(product domain.Product) error {
	if errs := product.Validate(); len(errs) > 0 {
		return errs[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO products (id, name, unit_price, category, description, image_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		product.ID, product.Name, product.UnitPrice, product.Category,
		product.Description, product.ImageURL, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

var _ domain.ProductCatalog = (*productCatalog)(nil)
