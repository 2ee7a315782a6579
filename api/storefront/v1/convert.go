package storefrontv1

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/pricing"
)

// Money форматирует сумму с двумя знаками после запятой.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FromTotals конвертирует итоги расчёта.
func FromTotals(t domain.Totals) Totals {
	return Totals{
		Subtotal: Money(t.Subtotal),
		Discount: Money(t.Discount),
		Tax:      Money(t.Tax),
		Shipping: Money(t.Shipping),
		Total:    Money(t.Total),
	}
}

// FromCart собирает ответ по корзине и её расчёту.
func FromCart(cart domain.Cart, quote pricing.Quote) Cart {
	items := make([]CartItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		name := line.Name
		if line.Missing {
			name = domain.UnknownProductName
		}
		items = append(items, CartItem{
			ProductID: line.ProductID,
			Name:      name,
			UnitPrice: Money(line.UnitPrice),
			Quantity:  line.Quantity,
			LineTotal: Money(line.Total()),
			Missing:   line.Missing,
		})
	}

	return Cart{
		SessionID: cart.SessionID.String(),
		Items:     items,
		ItemCount: cart.ItemCount(),
		PromoCode: cart.PromoCode,
		Totals:    FromTotals(quote.Totals),
	}
}

// FromProduct конвертирует товар каталога.
func FromProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       Money(p.UnitPrice),
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

// FromProducts конвертирует список товаров.
func FromProducts(products []domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromPromoCodes конвертирует справочник промокодов.
func FromPromoCodes(codes []domain.PromoCode) []PromoCode {
	out := make([]PromoCode, 0, len(codes))
	for _, c := range codes {
		out = append(out, PromoCode{
			Code:            c.Code,
			PercentDiscount: c.PercentDiscount.String(),
			FreeShipping:    c.FreeShipping,
		})
	}
	return out
}

// ToCustomer переводит контактные данные из запроса в доменную модель.
func ToCustomer(c Customer) domain.Customer {
	return domain.Customer{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		Address: domain.Address{
			Street:  c.Address.Street,
			City:    c.Address.City,
			State:   c.Address.State,
			Pincode: c.Address.Pincode,
		},
	}
}

// FromOrder конвертирует оформленный заказ.
func FromOrder(o domain.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   Money(line.UnitPrice),
			Quantity:    line.Quantity,
			LineTotal:   Money(line.LineTotal),
		})
	}

	c := o.Customer
	return Order{
		ID:        o.ID,
		SessionID: o.SessionID.String(),
		Customer: Customer{
			Name:  c.Name,
			Email: c.Email,
			Phone: c.Phone,
			Address: Address{
				Street:  c.Address.Street,
				City:    c.Address.City,
				State:   c.Address.State,
				Pincode: c.Address.Pincode,
			},
		},
		Lines:     lines,
		PromoCode: o.PromoCode,
		Totals:    FromTotals(o.Totals),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

// FromOrders конвертирует список заказов.
func FromOrders(orders []domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
