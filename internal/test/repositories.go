package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	Next  int
	Err   error

	CreateFn func(context.Context, *model.User) (*model.User, error)
	FindFn   func(context.Context, string, string) (*model.User, error)
	mu       sync.Mutex
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User), Next: 1}
}

// Create registers user unless username or email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, user)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	for _, existing := range s.Users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", s.Next)
	stored.CreatedAt = time.Unix(0, 0).UTC()
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Users[stored.ID] = &stored
	out := stored
	return &out, nil
}

// FindByUsernameOrEmail matches either non-empty criterion.
func (s *UserRepositoryStub) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if s.FindFn != nil {
		return s.FindFn(ctx, username, email)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			out := *u
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetContact returns the contact view of a stored user.
func (s *UserRepositoryStub) GetContact(ctx context.Context, id string) (*model.UserContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if u, ok := s.Users[id]; ok {
		contact := u.Contact()
		return &contact, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in insertion order and allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	ListByOwnerFn  func(context.Context, string) ([]model.Order, error)
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus, model.OrderStatus) (*model.Order, error)

	Orders []model.Order
	Next   int
	mu     sync.Mutex
}

// Create stores a copy with an assigned id and timestamps.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Next++
	stored := *order
	stored.ID = fmt.Sprintf("order-%d", s.Next)
	stored.CreatedAt = time.Unix(int64(s.Next), 0).UTC()
	stored.UpdatedAt = stored.CreatedAt
	if stored.OrderDate.IsZero() {
		stored.OrderDate = stored.CreatedAt
	}
	s.Orders = append(s.Orders, stored)
	out := stored
	return &out, nil
}

// ListByOwner returns the owner's orders newest first.
func (s *OrderRepositoryStub) ListByOwner(ctx context.Context, userID string) ([]model.Order, error) {
	if s.ListByOwnerFn != nil {
		return s.ListByOwnerFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Order{}
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if s.Orders[i].UserID == userID {
			out = append(out, s.Orders[i])
		}
	}
	return out, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus rewrites the stored status when it still equals from.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			if s.Orders[i].Status != from {
				return nil, domainErrors.ErrInvalidTransition
			}
			s.Orders[i].Status = to
			s.Orders[i].UpdatedAt = s.Orders[i].UpdatedAt.Add(time.Second)
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// RepositoryFactoryStub bundles repository stubs behind repository.Factory.
type RepositoryFactoryStub struct {
	UserRepo  repository.UserRepository
	OrderRepo repository.OrderRepository
}

func (f RepositoryFactoryStub) Users() repository.UserRepository   { return f.UserRepo }
func (f RepositoryFactoryStub) Orders() repository.OrderRepository { return f.OrderRepo }

var (
	_ repository.UserRepository  = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository = (*OrderRepositoryStub)(nil)
	_ repository.Factory         = RepositoryFactoryStub{}
)
