package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает позицию каталога. После создания не изменяется.
type Product struct {
	ID          string
	Name        string
	UnitPrice   decimal.Decimal
	Category    string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// NewProduct собирает товар и проверяет обязательные поля.
func NewProduct(id, name string, unitPrice decimal.Decimal, category, description string) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		UnitPrice:   unitPrice,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	if errs := p.Validate(); len(errs) > 0 {
		return Product{}, errs[0]
	}
	return p, nil
}

// Validate проверяет инварианты товара и возвращает список замечаний.
func (p *Product) Validate() []error {
	var errs []error

	if p.ID == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Category == "" {
		errs = append(errs, ErrProductCategoryRequired)
	}
	if p.UnitPrice.IsNegative() {
		errs = append(errs, ErrProductPriceInvalid)
	}

	return errs
}

// ProductFilter задаёт условия выборки каталога.
type ProductFilter struct {
	// Search ищет подстроку в названии и описании без учёта регистра.
	Search   string
	Category string
}

// Match проверяет, подходит ли товар под фильтр.
func (f ProductFilter) Match(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}
