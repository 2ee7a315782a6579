package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// EventTypeOrderPlaced — заказ оформлен из корзины.
	EventTypeOrderPlaced EventType = domain.EventTypeOrderPlaced
)

// Topics для Kafka
const (
	TopicOrderEvents     = "storefront.order.events"
	TopicDeadLetterQueue = "storefront.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers
const (
	HeaderEventType     = "x-event-type"
	HeaderAggregateType = "x-aggregate-type"
)

// OrderLineEvent — строка заказа в событии. Деньги передаются строками с двумя знаками.
type OrderLineEvent struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
}

// OrderPlacedEvent представляет событие оформления заказа
type OrderPlacedEvent struct {
	EventType     EventType        `json:"event_type"`
	OrderID       string           `json:"order_id"`
	SessionID     string           `json:"session_id"`
	CustomerEmail string           `json:"customer_email"`
	Status        string           `json:"status"`
	PromoCode     string           `json:"promo_code,omitempty"`
	Lines         []OrderLineEvent `json:"lines"`
	Subtotal      string           `json:"subtotal"`
	Discount      string           `json:"discount"`
	Tax           string           `json:"tax"`
	Shipping      string           `json:"shipping"`
	Total         string           `json:"total"`
	Timestamp     time.Time        `json:"timestamp"`
}

// NewOrderPlacedEvent создает событие по оформленному заказу
func NewOrderPlacedEvent(order domain.Order) *OrderPlacedEvent {
	lines := make([]OrderLineEvent, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineEvent{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal.StringFixed(2),
		})
	}

	return &OrderPlacedEvent{
		EventType:     EventTypeOrderPlaced,
		OrderID:       order.ID,
		SessionID:     order.SessionID.String(),
		CustomerEmail: order.Customer.Email,
		Status:        string(order.Status),
		PromoCode:     order.PromoCode,
		Lines:         lines,
		Subtotal:      order.Totals.Subtotal.StringFixed(2),
		Discount:      order.Totals.Discount.StringFixed(2),
		Tax:           order.Totals.Tax.StringFixed(2),
		Shipping:      order.Totals.Shipping.StringFixed(2),
		Total:         order.Totals.Total.StringFixed(2),
		Timestamp:     order.CreatedAt,
	}
}
