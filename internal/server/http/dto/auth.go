package dto

import "github.com/umaru-jpg/luvyn/internal/domain/model"

// UserSummary is the public view of an account.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewUserSummary strips credentials from a stored user.
func NewUserSummary(u *model.User) *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName}
}
