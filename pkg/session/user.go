package session

import (
	"strings"

	"github.com/google/uuid"
)

// User is the identity record held for the current authenticated visitor.
// It is owned exclusively by the Store; nothing outside the store's
// bootstrap/login/logout transitions mutates it.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// FullName returns the billing name used for payment instruments.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
