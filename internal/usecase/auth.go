package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/domain/repository"
	pkgAuth "github.com/umaru-jpg/luvyn/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users     repository.UserRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
	validator *Validator
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, validator *Validator) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, validator: validator}
}

// Register validates the sign-up payload and creates a user.
// A taken username or email yields ErrAlreadyExists.
func (u *AuthUseCase) Register(ctx context.Context, in model.Registration) (*model.User, error) {
	in = in.Normalize()
	if err := u.validator.Struct(in); err != nil {
		return nil, err
	}

	_, err := u.users.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil:
		return nil, domainErrors.ErrAlreadyExists
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	usr, err := u.users.Create(ctx, &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return usr, nil
}

// Login checks credentials and returns the user with a fresh token.
func (u *AuthUseCase) Login(ctx context.Context, in model.Credentials) (*model.User, string, error) {
	in.Email = model.NormalizeEmail(in.Email)
	if err := u.validator.Struct(in); err != nil {
		return nil, "", err
	}

	usr, err := u.users.FindByUsernameOrEmail(ctx, "", in.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if err := u.hasher.Compare(usr.PasswordHash, in.Password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Email: usr.Email})
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return usr, token, nil
}

// ParseToken extracts claims from provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Claims, error) {
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Contact fetches the notification details of a user.
func (u *AuthUseCase) Contact(ctx context.Context, id string) (*model.UserContact, error) {
	return u.users.GetContact(ctx, id)
}
