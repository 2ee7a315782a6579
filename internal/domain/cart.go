package domain

import (
	"math"
	"strings"
	"time"
)

// MaxQuantity — верхняя граница количества одной позиции, совпадает с
// диапазоном колонки quantity в Postgres.
const MaxQuantity = math.MaxInt32

// SessionID — непрозрачный идентификатор сессии покупателя.
type SessionID string

// ParseSessionID нормализует идентификатор и отклоняет пустые значения.
func ParseSessionID(raw string) (SessionID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrSessionRequired
	}
	return SessionID(trimmed), nil
}

func (s SessionID) String() string {
	return string(s)
}

// CartItem — позиция корзины. Quantity всегда >= 1: нулевое количество
// означает отсутствие позиции, а не хранимый ноль.
type CartItem struct {
	ProductID string
	Quantity  int
	AddedAt   time.Time
}

// Cart — корзина одной сессии. Позиции уникальны по ProductID и хранят
// порядок добавления.
type Cart struct {
	SessionID SessionID
	Items     []CartItem
	PromoCode string
	UpdatedAt time.Time
}

// NewCart возвращает пустую корзину для сессии.
func NewCart(sessionID SessionID) Cart {
	return Cart{SessionID: sessionID, Items: []CartItem{}}
}

// IsEmpty сообщает, что в корзине нет позиций.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount возвращает суммарное количество единиц товара.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Find возвращает индекс позиции или -1.
func (c *Cart) Find(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add добавляет новую позицию или увеличивает количество существующей.
func (c *Cart) Add(productID string, quantity int, now time.Time) error {
	if productID == "" {
		return ErrProductIDRequired
	}
	if quantity <= 0 {
		return ErrQuantityInvalid
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}

	if idx := c.Find(productID); idx >= 0 {
		if c.Items[idx].Quantity > MaxQuantity-quantity {
			return ErrQuantityTooLarge
		}
		c.Items[idx].Quantity += quantity
	} else {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity, AddedAt: now})
	}
	c.UpdatedAt = now
	return nil
}

// SetQuantity задаёт количество точно; quantity <= 0 удаляет позицию.
func (c *Cart) SetQuantity(productID string, quantity int, now time.Time) error {
	idx := c.Find(productID)
	if idx < 0 {
		return ErrCartItemNotFound
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	if quantity <= 0 {
		c.removeAt(idx)
	} else {
		c.Items[idx].Quantity = quantity
	}
	c.UpdatedAt = now
	return nil
}

// Remove удаляет позицию; возвращает false, если её не было.
func (c *Cart) Remove(productID string, now time.Time) bool {
	idx := c.Find(productID)
	if idx < 0 {
		return false
	}
	c.removeAt(idx)
	c.UpdatedAt = now
	return true
}

// ApplyPromo привязывает уже проверенный промокод к непустой корзине.
func (c *Cart) ApplyPromo(code string, now time.Time) error {
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	c.PromoCode = code
	c.UpdatedAt = now
	return nil
}

func (c *Cart) removeAt(idx int) {
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	// Промокод живёт только вместе с позициями.
	if len(c.Items) == 0 {
		c.PromoCode = ""
	}
}

// Clone возвращает глубокую копию корзины.
func (c Cart) Clone() Cart {
	dst := c
	dst.Items = append([]CartItem(nil), c.Items...)
	if dst.Items == nil {
		dst.Items = []CartItem{}
	}
	return dst
}
