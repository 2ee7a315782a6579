// Package promo хранит реестр промокодов витрины.
package promo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// DefaultCodes — стандартный набор промокодов.
func DefaultCodes() []domain.PromoCode {
	return []domain.PromoCode{
		{Code: "SAVE10", PercentDiscount: decimal.NewFromInt(10)},
		{Code: "FREESHIP", PercentDiscount: decimal.Zero, FreeShipping: true},
		{Code: "WELCOME20", PercentDiscount: decimal.NewFromInt(20)},
		{Code: "COMBO25", PercentDiscount: decimal.NewFromInt(25), FreeShipping: true},
	}
}

// Registry — неизменяемый после создания реестр, безопасен для конкурентного чтения.
type Registry struct {
	codes  map[string]domain.PromoCode
	sorted []domain.PromoCode
}

var _ domain.PromoCodeRegistry = (*Registry)(nil)

// NewRegistry валидирует коды и строит реестр. Дубликаты после нормализации запрещены.
func NewRegistry(codes []domain.PromoCode) (*Registry, error) {
	r := &Registry{codes: make(map[string]domain.PromoCode, len(codes))}
	for _, code := range codes {
		if err := code.Validate(); err != nil {
			return nil, err
		}
		code.Code = domain.NormalizePromoCode(code.Code)
		if _, exists := r.codes[code.Code]; exists {
			return nil, fmt.Errorf("%w: duplicate promo code %s", domain.ErrInvalidArgument, code.Code)
		}
		r.codes[code.Code] = code
		r.sorted = append(r.sorted, code)
	}
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i].Code < r.sorted[j].Code })
	return r, nil
}

// NewDefaultRegistry возвращает реестр со стандартными кодами.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultCodes())
	if err != nil {
		panic(fmt.Sprintf("default promo codes are invalid: %v", err))
	}
	return r
}

// Lookup нормализует код и возвращает правило или ErrPromoCodeNotFound.
func (r *Registry) Lookup(code string) (domain.PromoCode, error) {
	normalized := domain.NormalizePromoCode(code)
	if normalized == "" {
		return domain.PromoCode{}, domain.ErrPromoCodeNotFound
	}
	promo, ok := r.codes[normalized]
	if !ok {
		return domain.PromoCode{}, domain.ErrPromoCodeNotFound
	}
	return promo, nil
}

// List возвращает копию кодов, отсортированных по имени.
func (r *Registry) List() []domain.PromoCode {
	return append([]domain.PromoCode(nil), r.sorted...)
}

type codeJSON struct {
	Code            string          `json:"code"`
	PercentDiscount decimal.Decimal `json:"percentDiscount"`
	FreeShipping    bool            `json:"freeShipping"`
}

// ParseCodes разбирает JSON-массив вида
// [{"code":"SAVE10","percentDiscount":10,"freeShipping":false}].
func ParseCodes(raw string) ([]domain.PromoCode, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var items []codeJSON
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse promo codes: %w", err)
	}

	codes := make([]domain.PromoCode, 0, len(items))
	for _, item := range items {
		codes = append(codes, domain.PromoCode{
			Code:            item.Code,
			PercentDiscount: item.PercentDiscount,
			FreeShipping:    item.FreeShipping,
		})
	}
	return codes, nil
}
