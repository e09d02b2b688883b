package storage

import (
	"context"
	"time"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/domain/repository"
)

func bound(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

type timeoutUsers struct {
	next    repository.UserRepository
	timeout time.Duration
}

func (u *timeoutUsers) Create(ctx context.Context, user *model.User) (*model.User, error) {
	ctx, cancel := bound(ctx, u.timeout)
	defer cancel()
	return u.next.Create(ctx, user)
}

func (u *timeoutUsers) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	ctx, cancel := bound(ctx, u.timeout)
	defer cancel()
	return u.next.FindByUsernameOrEmail(ctx, username, email)
}

func (u *timeoutUsers) GetContact(ctx context.Context, id string) (*model.UserContact, error) {
	ctx, cancel := bound(ctx, u.timeout)
	defer cancel()
	return u.next.GetContact(ctx, id)
}

type timeoutOrders struct {
	next    repository.OrderRepository
	timeout time.Duration
}

func (o *timeoutOrders) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	ctx, cancel := bound(ctx, o.timeout)
	defer cancel()
	return o.next.Create(ctx, order)
}

func (o *timeoutOrders) ListByOwner(ctx context.Context, userID string) ([]model.Order, error) {
	ctx, cancel := bound(ctx, o.timeout)
	defer cancel()
	return o.next.ListByOwner(ctx, userID)
}

func (o *timeoutOrders) GetByID(ctx context.Context, id string) (*model.Order, error) {
	ctx, cancel := bound(ctx, o.timeout)
	defer cancel()
	return o.next.GetByID(ctx, id)
}

func (o *timeoutOrders) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	ctx, cancel := bound(ctx, o.timeout)
	defer cancel()
	return o.next.UpdateStatus(ctx, id, from, to)
}
