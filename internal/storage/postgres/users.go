package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

const userColumns = `id, username, email, password_hash, full_name, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = r.storage.now().UTC()
	created.UpdatedAt = created.CreatedAt

	_, err := r.storage.pool.Exec(ctx, query,
		created.ID, created.Username, created.Email, created.PasswordHash,
		created.FullName, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if username == "" && email == "" {
		return nil, domainErrors.ErrNotFound
	}

	const query = `SELECT ` + userColumns + ` FROM users
                   WHERE ($1 <> '' AND username=$1) OR ($2 <> '' AND email=$2)
                   LIMIT 1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, username, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetContact(ctx context.Context, id string) (*model.UserContact, error) {
	const query = `SELECT id, username, email, full_name FROM users WHERE id=$1`
	var c model.UserContact
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Username, &c.Email, &c.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user contact: %w", err)
	}
	return &c, nil
}
