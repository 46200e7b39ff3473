package domain

import (
	"strings"
	"time"
)

// User represents an account in the identity directory.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasContact reports whether the account can receive email.
func (u *User) HasContact() bool {
	return u != nil && strings.TrimSpace(u.Email) != ""
}
