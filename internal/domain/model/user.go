package model

import "time"

// User represents a registered storefront customer.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserContact is the part of a user that notifications are allowed to see.
type UserContact struct {
	ID       string
	Username string
	Email    string
	FullName string
}

// Contact projects the user onto its notification fields.
func (u *User) Contact() UserContact {
	return UserContact{ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName}
}

// DisplayName picks the friendliest available name for greetings.
func (c UserContact) DisplayName() string {
	switch {
	case c.FullName != "":
		return c.FullName
	case c.Username != "":
		return c.Username
	default:
		return "Customer"
	}
}
