package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	validator *Validator
	initial   model.OrderStatus
}

// NewOrderUseCase constructs OrderUseCase. Orders start in initial unless the
// draft asks for another originating status; anything that cannot originate
// an order falls back to confirmed.
func NewOrderUseCase(orders repository.OrderRepository, validator *Validator, initial model.OrderStatus) *OrderUseCase {
	if !initial.CanOriginate() {
		initial = model.OrderStatusConfirmed
	}
	return &OrderUseCase{orders: orders, validator: validator, initial: initial}
}

// Create validates the draft and stores a new order owned by userID.
func (u *OrderUseCase) Create(ctx context.Context, userID string, draft model.OrderDraft) (*model.Order, error) {
	if err := u.validator.Struct(draft); err != nil {
		return nil, err
	}

	status := u.initial
	if draft.Status != "" {
		status = draft.Status
	}

	order, err := u.orders.Create(ctx, &model.Order{
		UserID:          userID,
		Products:        draft.LineItems(),
		TotalAmount:     draft.TotalAmount,
		Status:          status,
		ShippingAddress: draft.Address(),
		PaymentMethod:   strings.TrimSpace(draft.PaymentMethod),
		TransactionID:   strings.TrimSpace(draft.TransactionID),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// List returns the owner's orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByOwner(ctx, userID)
}

// Get returns an order only to its owner.
func (u *OrderUseCase) Get(ctx context.Context, userID, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// UpdateStatus moves the caller's order along the lifecycle.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, userID, id, status string) (*model.Order, error) {
	next := model.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, domainErrors.NewValidationError("status", "must be one of: "+statusList())
	}

	order, err := u.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", domainErrors.ErrInvalidTransition, order.Status, next)
	}

	return u.orders.UpdateStatus(ctx, id, order.Status, next)
}

func statusList() string {
	statuses := model.OrderStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
