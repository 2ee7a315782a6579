// Package storefrontv1 описывает публичный контракт витрины: сообщения,
// gRPC-сервис и JSON-кодек, которым они передаются по сети. Те же сообщения
// отдаёт HTTP API.
package storefrontv1

import "time"

// Totals — разбивка стоимости. Суммы передаются строками с двумя знаками
// после запятой ("260.00").
type Totals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// CartItem — позиция корзины с ценой из текущего каталога.
type CartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
	// Missing — товар пропал из каталога и считается по нулевой цене.
	Missing bool `json:"missing,omitempty"`
}

// Cart — корзина сессии вместе с итогами.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	PromoCode string     `json:"promoCode,omitempty"`
	Totals    Totals     `json:"totals"`
}

// Product — товар каталога.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image,omitempty"`
}

// PromoCode — правило скидки.
type PromoCode struct {
	Code            string `json:"code"`
	PercentDiscount string `json:"percentDiscount"`
	FreeShipping    bool   `json:"freeShipping"`
}

// Address — адрес доставки.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Customer — контактные данные покупателя.
type Customer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

// OrderLine — позиция оформленного заказа.
type OrderLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
}

// Order — оформленный заказ.
type Order struct {
	ID        string      `json:"id"`
	SessionID string      `json:"sessionId"`
	Customer  Customer    `json:"customer"`
	Lines     []OrderLine `json:"items"`
	PromoCode string      `json:"promoCode,omitempty"`
	Totals    Totals      `json:"totals"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type GetCartRequest struct {
	SessionID string `json:"sessionId"`
}

type AddItemRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	// Quantity не задано — добавляется одна единица, как в HTTP API.
	Quantity *int `json:"quantity,omitempty"`
}

// GetQuantity возвращает запрошенное количество или 1, если оно не задано.
func (r *AddItemRequest) GetQuantity() int {
	if r == nil || r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// Quantity возвращает указатель для AddItemRequest.Quantity.
func Quantity(n int) *int {
	return &n
}

type UpdateItemRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type RemoveItemRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
}

type ClearCartRequest struct {
	SessionID string `json:"sessionId"`
}

type ApplyPromoRequest struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

// CartResponse возвращается всеми операциями над корзиной.
type CartResponse struct {
	Cart Cart `json:"cart"`
	// Removed заполняется только RemoveItem: false, если позиции не было.
	Removed bool `json:"removed,omitempty"`
}

type PlaceOrderRequest struct {
	SessionID string   `json:"sessionId"`
	Customer  Customer `json:"customer"`
}

type GetOrderRequest struct {
	OrderID string `json:"orderId"`
}

type OrderResponse struct {
	Order Order `json:"order"`
}

type ListOrdersRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}

type ListPromoCodesRequest struct{}

type ListPromoCodesResponse struct {
	Codes []PromoCode `json:"codes"`
}

type ListProductsRequest struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
}

type GetProductRequest struct {
	ProductID string `json:"productId"`
}

type AddProductRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image,omitempty"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}
