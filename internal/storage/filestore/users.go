package filestore

import (
	"context"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/storage/record"
)

type userRepository struct {
	store *Store
}

// Create checks uniqueness and appends under the same lock, so two concurrent
// registrations cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created := *user
	created.ID = r.store.newID()
	created.CreatedAt = r.store.now().UTC()
	created.UpdatedAt = created.CreatedAt

	err := update(ctx, r.store.users, func(users []record.User) ([]record.User, error) {
		for _, u := range users {
			if u.Username == created.Username || u.Email == created.Email {
				return nil, domainErrors.ErrAlreadyExists
			}
		}
		return append(users, record.FromUser(&created)), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	users, err := read[record.User](ctx, r.store.users)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return u.Model(), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *userRepository) GetContact(ctx context.Context, id string) (*model.UserContact, error) {
	users, err := read[record.User](ctx, r.store.users)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			contact := u.Model().Contact()
			return &contact, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}
