package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Quote — расчёт корзины вместе с разрешёнными позициями и промокодом.
type Quote struct {
	Lines  []Line
	Promo  *domain.PromoCode
	Totals domain.Totals
}

// OrderLines превращает позиции расчёта в снимок для заказа.
func (q Quote) OrderLines() []domain.OrderLine {
	out := make([]domain.OrderLine, 0, len(q.Lines))
	for _, line := range q.Lines {
		ol := domain.OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.Total(),
		}
		if line.Missing {
			ol.ProductName = domain.UnknownProductName
		}
		out = append(out, ol)
	}
	return out
}

// Engine разрешает цены из каталога и промокод из реестра, затем вызывает Compute.
type Engine struct {
	catalog domain.ProductCatalog
	promos  domain.PromoCodeRegistry
	rules   Rules
}

// NewEngine создаёт движок расчёта.
func NewEngine(catalog domain.ProductCatalog, promos domain.PromoCodeRegistry, rules Rules) *Engine {
	return &Engine{catalog: catalog, promos: promos, rules: rules}
}

// Rules возвращает действующие параметры расчёта.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Quote считает итоги по текущему состоянию корзины и текущим ценам.
func (e *Engine) Quote(cart domain.Cart) (Quote, error) {
	lines := make([]Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := Line{ProductID: item.ProductID, Quantity: item.Quantity}

		product, err := e.catalog.Get(item.ProductID)
		switch {
		case err == nil:
			line.Name = product.Name
			line.UnitPrice = product.UnitPrice
		case errors.Is(err, domain.ErrProductNotFound):
			if e.rules.StrictCatalog {
				return Quote{}, fmt.Errorf("quote cart %s: %w", cart.SessionID, err)
			}
			line.Missing = true
			line.UnitPrice = decimal.Zero
		default:
			return Quote{}, fmt.Errorf("quote cart %s: lookup product %s: %w", cart.SessionID, item.ProductID, err)
		}

		lines = append(lines, line)
	}

	var promo *domain.PromoCode
	if cart.PromoCode != "" && e.promos != nil {
		// Код мог исчезнуть из реестра после применения: тогда скидки нет.
		if found, err := e.promos.Lookup(cart.PromoCode); err == nil {
			promo = &found
		}
	}

	return Quote{
		Lines:  lines,
		Promo:  promo,
		Totals: Compute(lines, promo, e.rules),
	}, nil
}
