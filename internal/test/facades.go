package test

import (
	"context"
	"sync"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, string, model.OrderDraft) (*model.Order, error)
	OrdersFn func(context.Context, string) ([]model.Order, error)
	OrderFn  func(context.Context, string, string) (*model.Order, error)
	UpdateFn func(context.Context, string, string, string) (*model.Order, error)
}

// CreateOrder delegates to provided function or returns a confirmed order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID string, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, draft)
	}
	return &model.Order{
		ID:            "order-1",
		UserID:        userID,
		Products:      draft.LineItems(),
		TotalAmount:   draft.TotalAmount,
		Status:        model.OrderStatusConfirmed,
		PaymentMethod: draft.PaymentMethod,
	}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: "order-1", UserID: userID, Status: model.OrderStatusConfirmed}}, nil
}

// Order returns a single order owned by the caller.
func (s OrderFacadeStub) Order(ctx context.Context, userID, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, id)
	}
	return &model.Order{ID: id, UserID: userID, Status: model.OrderStatusConfirmed}, nil
}

// UpdateOrderStatus returns the order with the requested status applied.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, userID, id, status string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, id, status)
	}
	return &model.Order{ID: id, UserID: userID, Status: model.OrderStatus(status)}, nil
}

// HealthFacadeStub reports a configurable backend state.
type HealthFacadeStub struct {
	Backend string
	Err     error
}

// Health returns the configured backend kind and error.
func (s HealthFacadeStub) Health(ctx context.Context) (string, error) {
	if s.Backend == "" {
		return "file", s.Err
	}
	return s.Backend, s.Err
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	HealthFacadeStub
}

// NotifierStub records enqueued confirmations.
type NotifierStub struct {
	Reject bool
	Jobs   []model.OrderConfirmation
	mu     sync.Mutex
}

// Enqueue stores the job unless Reject is set.
func (n *NotifierStub) Enqueue(job model.OrderConfirmation) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Reject {
		return false
	}
	n.Jobs = append(n.Jobs, job)
	return true
}

// Enqueued returns a snapshot of recorded jobs.
func (n *NotifierStub) Enqueued() []model.OrderConfirmation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.OrderConfirmation(nil), n.Jobs...)
}

// SenderStub is a notification channel that records deliveries.
type SenderStub struct {
	Name   string
	SendFn func(context.Context, model.OrderConfirmation) error
	Sent   []model.OrderConfirmation
	mu     sync.Mutex
}

// Channel returns the configured channel name.
func (s *SenderStub) Channel() string {
	if s.Name == "" {
		return "stub"
	}
	return s.Name
}

// Send records the confirmation and applies the override, if any.
func (s *SenderStub) Send(ctx context.Context, job model.OrderConfirmation) error {
	s.mu.Lock()
	s.Sent = append(s.Sent, job)
	s.mu.Unlock()
	if s.SendFn != nil {
		return s.SendFn(ctx, job)
	}
	return nil
}

// Deliveries returns a snapshot of recorded sends.
func (s *SenderStub) Deliveries() []model.OrderConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderConfirmation(nil), s.Sent...)
}
