package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает состояние заказа. Других переходов, кроме
// оформления, в сервисе нет.
type OrderStatus string

const (
	// OrderStatusConfirmed — заказ оформлен и зафиксирован.
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// UnknownProductName подставляется в строку заказа, если товар пропал из каталога.
const UnknownProductName = "Unknown Product"

// Totals — пятиполевая разбивка стоимости. Каждое поле округлено до
// копеек; Total равен сумме уже округлённых компонентов.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Equal сравнивает суммы по значению.
func (t Totals) Equal(other Totals) bool {
	return t.Subtotal.Equal(other.Subtotal) &&
		t.Discount.Equal(other.Discount) &&
		t.Tax.Equal(other.Tax) &&
		t.Shipping.Equal(other.Shipping) &&
		t.Total.Equal(other.Total)
}

// OrderLine — снимок позиции корзины на момент оформления.
type OrderLine struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
}

// Order — неизменяемый результат оформления корзины.
type Order struct {
	ID        string
	SessionID SessionID
	Customer  Customer
	Lines     []OrderLine
	Totals    Totals
	PromoCode string
	Status    OrderStatus
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.SessionID == "" {
		errs = append(errs, ErrSessionRequired)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrEmptyCart)
	}
	if err := o.Customer.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if line.UnitPrice.IsNegative() {
			errs = append(errs, ErrProductPriceInvalid)
		}
	}

	return errs
}

// Clone возвращает копию заказа, не разделяющую срез строк.
func (o Order) Clone() Order {
	dst := o
	dst.Lines = append([]OrderLine(nil), o.Lines...)
	return dst
}
