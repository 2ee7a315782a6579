// Package catalog содержит стартовый набор товаров и админский сценарий
// пополнения каталога.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// DefaultProducts возвращает демонстрационный каталог витрины.
func DefaultProducts() []domain.Product {
	now := time.Now().UTC()
	item := func(id, name string, price int64, category, description, image string) domain.Product {
		return domain.Product{
			ID:          id,
			Name:        name,
			UnitPrice:   decimal.NewFromInt(price),
			Category:    category,
			Description: description,
			ImageURL:    image,
			CreatedAt:   now,
		}
	}

	return []domain.Product{
		item("p1", "Wireless Bluetooth Headphones", 2499, "electronics",
			"Premium wireless headphones with noise cancellation and 30-hour battery life.",
			"/images/Wireless Bluetooth Headphones.jpeg"),
		item("p2", "Smart Watch Series 5", 3999, "electronics",
			"Advanced smartwatch with health monitoring, GPS, and water resistance.",
			"/images/smart watch.jpeg"),
		item("p3", "Running Shoes Pro", 3199, "sports",
			"Professional running shoes with advanced cushioning and breathable material.",
			"/images/Running Shoes.jpeg"),
		item("p4", "Travel Backpack", 1499, "travel",
			"Durable travel backpack with multiple compartments and laptop sleeve.",
			"/images/Travel Backpack.jpeg"),
		item("p5", "Wireless Charger", 899, "electronics",
			"Fast wireless charging pad compatible with all Qi-enabled devices.",
			"/images/Wireless Charger.jpg"),
		item("p6", "Coffee Maker Deluxe", 4999, "home",
			"Premium coffee maker with built-in grinder and programmable settings.",
			"/images/Coffee Maker Deluxe.jpeg"),
	}
}
