package handlers

import (
	"context"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
	pkgAuth "github.com/umaru-jpg/luvyn/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in model.Registration) (*model.User, error)
	Login(ctx context.Context, in model.Credentials) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID string, draft model.OrderDraft) (*model.Order, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	Order(ctx context.Context, userID, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, userID, id, status string) (*model.Order, error)
}

// HealthFacade reports storage availability.
type HealthFacade interface {
	Health(ctx context.Context) (string, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	HealthFacade
}
