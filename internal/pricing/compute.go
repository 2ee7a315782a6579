// Package pricing считает итоговую стоимость корзины. Это единственное место,
// где живут правила скидки, налога и доставки.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Line — позиция корзины с разрешённой ценой.
type Line struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	// Missing — товара больше нет в каталоге, цена считается нулевой.
	Missing bool
}

// Total возвращает стоимость позиции, округлённую до копеек.
func (l Line) Total() decimal.Decimal {
	if l.Missing {
		return decimal.Zero
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(moneyPlaces)
}

// Compute — чистая функция расчёта итогов.
//
// Порядок: подытог, скидка от подытога, налог от (подытог - скидка),
// доставка. Каждый компонент округляется до 2 знаков (half-up для
// неотрицательных сумм), Total складывается из уже округлённых значений.
func Compute(lines []Line, promo *domain.PromoCode, rules Rules) domain.Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Missing || line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := decimal.Zero
	shipping := rules.DefaultShipping
	if promo != nil {
		discount = subtotal.Mul(promo.PercentDiscount).Div(hundred)
		if promo.FreeShipping {
			shipping = decimal.Zero
		}
	}
	if len(lines) == 0 && !rules.ShipEmptyCart {
		shipping = decimal.Zero
	}

	tax := subtotal.Sub(discount).Mul(rules.TaxRate)

	totals := domain.Totals{
		Subtotal: subtotal.Round(moneyPlaces),
		Discount: discount.Round(moneyPlaces),
		Tax:      tax.Round(moneyPlaces),
		Shipping: shipping.Round(moneyPlaces),
	}
	totals.Total = totals.Subtotal.
		Sub(totals.Discount).
		Add(totals.Tax).
		Add(totals.Shipping)
	return totals
}
