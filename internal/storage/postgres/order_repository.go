package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const orderColumns = `
	id, session_id, customer_name, customer_email, customer_phone,
	address_street, address_city, address_state, address_pincode,
	promo_code, subtotal, discount, tax, shipping, total, status, created_at`

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт PostgreSQL-реализацию CheckoutOrderRepository.
// Заказ и его строки пишутся одной транзакцией.
func NewOrderRepository(store *Store) domain.CheckoutOrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		return insertOrder(ctx, tx, order)
	})
}

// CreateAndClearCart пишет заказ и удаляет корзину сессии в одной транзакции:
// либо есть заказ и нет корзины, либо наоборот.
func (r *orderRepository) CreateAndClearCart(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertOrder(ctx, tx, order); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE session_id = $1`, string(order.SessionID)); err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}
		return nil
	})
}

func insertOrder(ctx context.Context, tx *sql.Tx, order domain.Order) error {
	c := order.Customer
	_, err := tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		order.ID, string(order.SessionID), c.Name, c.Email, c.Phone,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.Pincode,
		order.PromoCode,
		order.Totals.Subtotal, order.Totals.Discount, order.Totals.Tax,
		order.Totals.Shipping, order.Totals.Total,
		string(order.Status), order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderAlreadyExists
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (
				order_id, position, product_id, product_name, unit_price, quantity, line_total
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			order.ID, i, line.ProductID, line.ProductName, line.UnitPrice, line.Quantity, line.LineTotal,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) Get(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	order, err := scanOrder(r.store.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Lines = lines

	return order, nil
}

func (r *orderRepository) List(sessionID domain.SessionID, limit int) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		query strings.Builder
		args  []any
	)
	var filter string
	if sessionID != "" {
		args = append(args, string(sessionID))
		filter = fmt.Sprintf(" WHERE session_id = $%d", len(args))
	}
	query.WriteString(`SELECT ` + orderColumns + ` FROM orders`)
	if limit > 0 {
		// Берём limit самых свежих, но отдаём их в порядке оформления.
		args = append(args, limit)
		fmt.Fprintf(&query, " WHERE seq IN (SELECT seq FROM orders%s ORDER BY seq DESC LIMIT $%d)", filter, len(args))
	} else {
		query.WriteString(filter)
	}
	query.WriteString(" ORDER BY seq ASC")

	rows, err := r.store.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	rows.Close()

	for i := range orders {
		lines, err := r.loadLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}

	return orders, nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT product_id, product_name, unit_price, quantity, line_total
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.UnitPrice, &line.Quantity, &line.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order     domain.Order
		sessionID string
		status    string
		totals    [5]decimal.Decimal
	)
	c := &order.Customer
	if err := row.Scan(
		&order.ID, &sessionID, &c.Name, &c.Email, &c.Phone,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.Pincode,
		&order.PromoCode,
		&totals[0], &totals[1], &totals[2], &totals[3], &totals[4],
		&status, &order.CreatedAt,
	); err != nil {
		return domain.Order{}, err
	}

	order.SessionID = domain.SessionID(sessionID)
	order.Status = domain.OrderStatus(status)
	order.CreatedAt = order.CreatedAt.UTC()
	order.Totals = domain.Totals{
		Subtotal: totals[0],
		Discount: totals[1],
		Tax:      totals[2],
		Shipping: totals[3],
		Total:    totals[4],
	}
	return order, nil
}

var _ domain.CheckoutOrderRepository = (*orderRepository)(nil)
