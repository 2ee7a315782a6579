package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestNewProduct(t *testing.T) {
	p, err := domain.NewProduct(" p1 ", "Headphones", decimal.NewFromInt(2499), "electronics", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p1" {
		t.Fatalf("expected trimmed id, got %q", p.ID)
	}

	_, err = domain.NewProduct("p2", "Bad", decimal.NewFromInt(-1), "electronics", "")
	if !errors.Is(err, domain.ErrProductPriceInvalid) {
		t.Fatalf("expected price error, got %v", err)
	}

	_, err = domain.NewProduct("p3", "", decimal.NewFromInt(1), "electronics", "")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestProductFilterMatch(t *testing.T) {
	p := domain.Product{Name: "Wireless Charger", Description: "Qi pad", Category: "electronics"}

	cases := []struct {
		filter domain.ProductFilter
		want   bool
	}{
		{domain.ProductFilter{}, true},
		{domain.ProductFilter{Search: "wireless"}, true},
		{domain.ProductFilter{Search: "QI"}, true},
		{domain.ProductFilter{Search: "shoes"}, false},
		{domain.ProductFilter{Category: "electronics"}, true},
		{domain.ProductFilter{Category: "home", Search: "wireless"}, false},
	}

	for _, tc := range cases {
		if got := tc.filter.Match(p); got != tc.want {
			t.Errorf("filter %+v: got %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestPromoCodeValidate(t *testing.T) {
	valid := domain.PromoCode{Code: "SAVE10", PercentDiscount: decimal.NewFromInt(10)}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooBig := domain.PromoCode{Code: "X", PercentDiscount: decimal.NewFromInt(101)}
	if err := tooBig.Validate(); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	noCode := domain.PromoCode{Code: "  "}
	if err := noCode.Validate(); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	if got := domain.NormalizePromoCode(" save10 "); got != "SAVE10" {
		t.Fatalf("unexpected normalized code %q", got)
	}
}
