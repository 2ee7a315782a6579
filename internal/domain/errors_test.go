package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "product", err: ErrProductNotFound, want: true},
		{name: "cart", err: ErrCartNotFound, want: true},
		{name: "cart item", err: ErrCartItemNotFound, want: true},
		{name: "order", err: ErrOrderNotFound, want: true},
		{name: "promo", err: ErrPromoCodeNotFound, want: true},
		{name: "wrapped", err: fmt.Errorf("load cart: %w", ErrCartNotFound), want: true},
		{name: "empty cart", err: ErrEmptyCart, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvalidArgumentFamily(t *testing.T) {
	for _, err := range []error{ErrSessionRequired, ErrProductIDRequired, ErrQuantityInvalid, ErrProductPriceInvalid} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected %v to be ErrInvalidArgument", err)
		}
	}
}

func TestIsIdempotencyConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "idempotency already exists",
			err:  ErrIdempotencyKeyAlreadyExists,
			want: true,
		},
		{
			name: "idempotency hash mismatch",
			err:  ErrIdempotencyHashMismatch,
			want: true,
		},
		{
			name: "wrapped idempotency conflict",
			err:  errors.Join(ErrIdempotencyHashMismatch, errors.New("extra context")),
			want: true,
		},
		{
			name: "non idempotency error",
			err:  ErrOrderNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsIdempotencyConflict(tt.err)
			if got != tt.want {
				t.Errorf("IsIdempotencyConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	client := []error{
		ErrQuantityInvalid,
		ErrCartItemNotFound,
		ErrEmptyCart,
		fmt.Errorf("%w: BOGUS", ErrInvalidCode),
		ErrInvalidCustomer,
	}
	for _, err := range client {
		if !IsClientError(err) {
			t.Errorf("expected client error: %v", err)
		}
	}
	if IsClientError(errors.New("disk full")) {
		t.Error("unexpected client error classification")
	}
}
