package filestore

import (
	"context"
	"fmt"
	"sort"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/storage/record"
)

type orderRepository struct {
	store *Store
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	created.ID = r.store.newID()
	created.CreatedAt = r.store.now().UTC()
	created.UpdatedAt = created.CreatedAt
	if created.OrderDate.IsZero() {
		created.OrderDate = created.CreatedAt
	}

	err := update(ctx, r.store.orders, func(orders []record.Order) ([]record.Order, error) {
		return append(orders, record.FromOrder(&created)), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := read[record.Order](ctx, r.store.orders)
	if err != nil {
		return nil, err
	}

	// Walk backwards so equal timestamps keep newest-appended first.
	result := []model.Order{}
	for i := len(orders) - 1; i >= 0; i-- {
		if orders[i].UserID != userID {
			continue
		}
		o, err := orders[i].Model()
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	orders, err := read[record.Order](ctx, r.store.orders)
	if err != nil {
		return nil, err
	}
	for _, rec := range orders {
		if rec.ID == id {
			return rec.Model()
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	err := update(ctx, r.store.orders, func(orders []record.Order) ([]record.Order, error) {
		for i := range orders {
			if orders[i].ID != id {
				continue
			}
			current := model.OrderStatus(orders[i].Status)
			if current != from || !current.CanTransitionTo(to) {
				return nil, fmt.Errorf("%w: %s to %s", domainErrors.ErrInvalidTransition, current, to)
			}
			orders[i].Status = string(to)
			orders[i].UpdatedAt = r.store.now().UTC()
			o, err := orders[i].Model()
			if err != nil {
				return nil, err
			}
			updated = o
			return orders, nil
		}
		return nil, domainErrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
