package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type cartRepository struct {
	store *Store
}

// NewCartRepository создаёт PostgreSQL-хранилище корзин. Save перезаписывает
// корзину целиком: шапку и все позиции в одной транзакции.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) Get(sessionID domain.SessionID) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cart := domain.NewCart(sessionID)
	err := r.store.db.QueryRowContext(ctx, `
		SELECT promo_code, updated_at
		FROM carts
		WHERE session_id = $1
	`, string(sessionID)).Scan(&cart.PromoCode, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}
	cart.UpdatedAt = cart.UpdatedAt.UTC()

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT product_id, quantity, added_at
		FROM cart_items
		WHERE session_id = $1
		ORDER BY position ASC
	`, string(sessionID))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.AddedAt); err != nil {
			return domain.Cart{}, fmt.Errorf("scan cart item: %w", err)
		}
		item.AddedAt = item.AddedAt.UTC()
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("iterate cart items: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) Save(cart domain.Cart) error {
	if cart.SessionID == "" {
		return domain.ErrSessionRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO carts (session_id, promo_code, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (session_id) DO UPDATE
			SET promo_code = EXCLUDED.promo_code,
			    updated_at = EXCLUDED.updated_at
		`, string(cart.SessionID), cart.PromoCode, cart.UpdatedAt); err != nil {
			return fmt.Errorf("upsert cart: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, string(cart.SessionID)); err != nil {
			return fmt.Errorf("reset cart items: %w", err)
		}

		for i, item := range cart.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO cart_items (session_id, position, product_id, quantity, added_at)
				VALUES ($1, $2, $3, $4, $5)
			`, string(cart.SessionID), i, item.ProductID, item.Quantity, item.AddedAt); err != nil {
				return fmt.Errorf("insert cart item: %w", err)
			}
		}
		return nil
	})
}

func (r *cartRepository) Delete(sessionID domain.SessionID) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.store.db.ExecContext(ctx, `DELETE FROM carts WHERE session_id = $1`, string(sessionID)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
