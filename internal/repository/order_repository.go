package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"game-center/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
)

// InsufficientStockError reports the first cart item whose requested quantity
// exceeded the available stock. The whole checkout is rolled back when it is
// returned.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// OrderRepository defines the interface for order data access, including the
// checkout transaction that converts a cart into an order.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// PlaceOrder converts the user's cart into an order inside a single
// transaction. All stock decrements, order-line inserts, and the cart wipe
// commit together or not at all.
//
// Cart item rows are locked in id order, so two concurrent checkouts by the
// same user serialize on them; the one that loses the race observes the
// emptied cart and fails with ErrEmptyCart. Each product row is locked before
// its stock is re-read, so competing checkouts for the last units of a
// product serialize too and stock can never go negative.
func (r *orderRepository) PlaceOrder(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback()

	var cartID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	items, err := lockCartItems(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, created_at) VALUES ($1, $2, $3)`,
		order.ID, order.UserID, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range items {
		var (
			name  string
			cost  decimal.Decimal
			stock int
		)

		// Re-read under a row lock; the cached catalog value may be stale.
		err = tx.QueryRowContext(ctx,
			`SELECT name, cost, stock FROM products WHERE id = $1 FOR UPDATE`,
			item.ProductID,
		).Scan(&name, &cost, &stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to read product stock: %w", err)
		}

		// First failure wins: abort on the first shortage, in item id order.
		if item.Quantity > stock {
			return nil, &InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: name,
				Requested:   item.Quantity,
				Available:   stock,
			}
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $2 WHERE id = $1`,
			item.ProductID, item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}

		line := domain.OrderLine{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: cost,
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order line: %w", err)
		}

		order.Lines = append(order.Lines, line)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to empty cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	return order, nil
}

// lockCartItems reads the cart's items in id order while taking row locks.
func lockCartItems(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]*domain.CartItem, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, cart_id, product_id, quantity
		 FROM cart_items
		 WHERE cart_id = $1
		 ORDER BY id
		 FOR UPDATE`,
		cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart items: %w", err)
	}
	defer rows.Close()

	items := []*domain.CartItem{}
	for rows.Next() {
		item := &domain.CartItem{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// FindByUser retrieves the user's orders, newest first, with their lines.
func (r *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for _, order := range orders {
		if err := r.loadLines(ctx, order); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// FindByID retrieves a single order with its lines.
func (r *orderRepository) FindByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, user_id, created_at FROM orders WHERE id = $1`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&order.ID, &order.UserID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) loadLines(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to list order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		line := domain.OrderLine{}
		err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating order lines: %w", err)
	}

	return nil
}
