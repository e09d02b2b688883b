package repository

import (
	"context"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Ownership is not checked here.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// UpdateStatus writes to only while the stored status still equals from.
	// A stale from yields errors.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error)
}
