package memory_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newOrder(id string, session domain.SessionID) domain.Order {
	return domain.Order{
		ID:        id,
		SessionID: session,
		Customer:  domain.Customer{Name: "Anna", Email: "anna@example.com"},
		Lines: []domain.OrderLine{
			{ProductID: "p1", ProductName: "Headphones", UnitPrice: decimal.NewFromInt(100), Quantity: 2, LineTotal: decimal.NewFromInt(200)},
		},
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", "s1")

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != order.ID || len(stored.Lines) != 1 {
		t.Fatalf("unexpected stored order: %+v", stored)
	}

	if err := repo.Create(order); !errors.Is(err, domain.ErrOrderAlreadyExists) {
		t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_StoresCopy(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", "s1")
	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	order.Lines[0].Quantity = 99

	stored, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Lines[0].Quantity != 2 {
		t.Fatalf("stored order was mutated from outside: %d", stored.Lines[0].Quantity)
	}
}

func TestOrderRepository_ListInPlacementOrder(t *testing.T) {
	repo := memory.NewOrderRepository()
	for i := 0; i < 5; i++ {
		session := domain.SessionID("s1")
		if i%2 == 1 {
			session = "s2"
		}
		if err := repo.Create(newOrder(fmt.Sprintf("order-%d", i), session)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	all, err := repo.List("", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 orders, got %d", len(all))
	}
	for i, order := range all {
		if order.ID != fmt.Sprintf("order-%d", i) {
			t.Fatalf("position %d: unexpected order %s", i, order.ID)
		}
	}

	s1, err := repo.List("s1", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(s1) != 3 || s1[0].ID != "order-0" || s1[2].ID != "order-4" {
		t.Fatalf("unexpected session orders: %+v", s1)
	}

	limited, err := repo.List("", 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(limited))
	}
	if limited[0].ID != "order-3" || limited[1].ID != "order-4" {
		t.Fatalf("expected the two newest orders in placement order, got %s, %s", limited[0].ID, limited[1].ID)
	}
}
