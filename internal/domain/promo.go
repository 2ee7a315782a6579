package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PromoCode — правило скидки: процент от подытога и/или бесплатная доставка.
type PromoCode struct {
	Code            string
	PercentDiscount decimal.Decimal
	FreeShipping    bool
}

// NormalizePromoCode приводит код к каноничному виду (без пробелов, в верхнем регистре).
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate проверяет код и диапазон скидки 0..100.
func (p PromoCode) Validate() error {
	if NormalizePromoCode(p.Code) == "" {
		return fmt.Errorf("%w: promo code is required", ErrInvalidArgument)
	}
	if p.PercentDiscount.IsNegative() || p.PercentDiscount.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: promo %s discount must be within 0..100", ErrInvalidArgument, p.Code)
	}
	return nil
}
