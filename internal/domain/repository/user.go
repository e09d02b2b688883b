package repository

import (
	"context"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	// Create stores a new user, assigning its id and timestamps.
	// Duplicate usernames or emails yield errors.ErrAlreadyExists.
	Create(ctx context.Context, user *model.User) (*model.User, error)
	// FindByUsernameOrEmail matches either field; empty criteria are ignored.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	GetContact(ctx context.Context, id string) (*model.UserContact, error)
}
