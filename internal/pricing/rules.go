package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Rules — параметры расчёта, общие для всех транспортов.
type Rules struct {
	// TaxRate — доля налога, начисляемого на подытог после скидки.
	TaxRate decimal.Decimal
	// DefaultShipping — фиксированная стоимость доставки без промокода FREESHIP-типа.
	DefaultShipping decimal.Decimal
	// ShipEmptyCart — начислять доставку пустой корзине.
	ShipEmptyCart bool
	// StrictCatalog — отклонять корзину со ссылкой на удалённый товар
	// вместо расчёта его как бесплатного.
	StrictCatalog bool
}

// DefaultRules возвращает налог 5% и доставку 50.
func DefaultRules() Rules {
	return Rules{
		TaxRate:         decimal.RequireFromString("0.05"),
		DefaultShipping: decimal.NewFromInt(50),
		ShipEmptyCart:   true,
	}
}

// Validate проверяет, что ставки неотрицательны, а налог не превышает 100%.
func (r Rules) Validate() error {
	if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: tax rate must be within 0..1", domain.ErrInvalidArgument)
	}
	if r.DefaultShipping.IsNegative() {
		return fmt.Errorf("%w: default shipping must be non-negative", domain.ErrInvalidArgument)
	}
	return nil
}
