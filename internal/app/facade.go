package app

import (
	"context"
	"log/slog"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/metrics"
	pkgAuth "github.com/umaru-jpg/luvyn/internal/pkg/auth"
	"github.com/umaru-jpg/luvyn/internal/storage"
	"github.com/umaru-jpg/luvyn/internal/usecase"
)

// Notifier accepts confirmation jobs without blocking.
type Notifier interface {
	Enqueue(job model.OrderConfirmation) bool
}

// BackendStatus reports which storage backend serves requests and whether it is reachable.
type BackendStatus interface {
	Kind() storage.Kind
	HealthCheck(ctx context.Context) error
}

type StoreFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	notifier Notifier
	backend  BackendStatus
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewStoreFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, notifier Notifier, backend BackendStatus, m *metrics.Metrics, logger *slog.Logger) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, notifier: notifier, backend: backend, metrics: m, logger: logger}
}

func (f *StoreFacade) Register(ctx context.Context, in model.Registration) (*model.User, error) {
	return f.auth.Register(ctx, in)
}

func (f *StoreFacade) Login(ctx context.Context, in model.Credentials) (*model.User, string, error) {
	return f.auth.Login(ctx, in)
}

func (f *StoreFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

// CreateOrder stores the order and queues its confirmation. Notification
// problems are logged and never fail the request.
func (f *StoreFacade) CreateOrder(ctx context.Context, userID string, draft model.OrderDraft) (*model.Order, error) {
	order, err := f.orders.Create(ctx, userID, draft)
	if err != nil {
		return nil, err
	}
	f.metrics.OrdersCreated.Inc()
	f.notify(ctx, order)
	return order, nil
}

func (f *StoreFacade) notify(ctx context.Context, order *model.Order) {
	contact, err := f.auth.Contact(ctx, order.UserID)
	if err != nil {
		f.logger.Warn("order confirmation skipped, owner lookup failed",
			slog.String("order", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	if contact.Email == "" {
		f.logger.Warn("order confirmation skipped, owner has no email", slog.String("order", order.ID))
		return
	}
	if !f.notifier.Enqueue(model.OrderConfirmation{Order: *order, Customer: *contact}) {
		f.logger.Warn("order confirmation dropped, notification queue unavailable", slog.String("order", order.ID))
	}
}

func (f *StoreFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.List(ctx, userID)
}

func (f *StoreFacade) Order(ctx context.Context, userID, id string) (*model.Order, error) {
	return f.orders.Get(ctx, userID, id)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, userID, id, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, userID, id, status)
}

// Health returns the active backend kind and the result of pinging it.
func (f *StoreFacade) Health(ctx context.Context) (string, error) {
	return string(f.backend.Kind()), f.backend.HealthCheck(ctx)
}
