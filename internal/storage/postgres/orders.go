package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/storage/record"
)

const orderColumns = `id, user_id, products, total_amount::text, status, shipping_address,
                      payment_method, transaction_id, order_date, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (id, user_id, products, total_amount, status, shipping_address,
                   payment_method, transaction_id, order_date, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	created := *order
	created.ID = uuid.NewString()
	created.CreatedAt = r.storage.now().UTC()
	created.UpdatedAt = created.CreatedAt
	if created.OrderDate.IsZero() {
		created.OrderDate = created.CreatedAt
	}

	products, err := json.Marshal(record.FromLineItems(created.Products))
	if err != nil {
		return nil, fmt.Errorf("encode products: %w", err)
	}
	var shipping []byte
	if created.ShippingAddress != nil {
		if shipping, err = json.Marshal(record.FromAddress(created.ShippingAddress)); err != nil {
			return nil, fmt.Errorf("encode shipping address: %w", err)
		}
	}

	_, err = r.storage.pool.Exec(ctx, query,
		created.ID, created.UserID, products, created.TotalAmount.String(), string(created.Status), shipping,
		created.PaymentMethod, created.TransactionID, created.OrderDate, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, userID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	result := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4 RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, string(to), r.storage.now().UTC(), id, string(from)))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	// Nothing matched: either the order is gone or another writer moved it first.
	var current string
	if err := r.storage.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("read order status: %w", err)
	}
	r.storage.logger.Info("order status changed concurrently",
		slog.String("order_id", id),
		slog.String("expected", string(from)),
		slog.String("current", current),
	)
	return nil, fmt.Errorf("%w: %s to %s", domainErrors.ErrInvalidTransition, current, to)
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o        model.Order
		products []byte
		total    string
		shipping []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &products, &total, &o.Status, &shipping,
		&o.PaymentMethod, &o.TransactionID, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}

	var items []record.LineItem
	if err := json.Unmarshal(products, &items); err != nil {
		return nil, fmt.Errorf("decode products of order %s: %w", o.ID, err)
	}
	lineItems, err := record.LineItemsModel(items)
	if err != nil {
		return nil, err
	}
	o.Products = lineItems

	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("decode total of order %s: %w", o.ID, err)
	}

	if len(shipping) > 0 {
		var addr record.Address
		if err := json.Unmarshal(shipping, &addr); err != nil {
			return nil, fmt.Errorf("decode shipping address of order %s: %w", o.ID, err)
		}
		o.ShippingAddress = addr.Model()
	}
	return &o, nil
}
