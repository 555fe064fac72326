// Package users declares and implements the credential store: durable user
// records keyed by normalized email.
package users

import (
	"context"

	"github.com/knothost/siteapi/internal/server/models"
)

// Repository is the credential store contract.
type Repository interface {
	// FindByEmail returns the user with the given email or common.ErrorNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Exists reports whether a user with the given email is stored.
	Exists(ctx context.Context, email string) (bool, error)

	// Create inserts a new user atomically, failing with common.ErrDuplicateKey
	// when the email is already taken. ID and timestamps are filled in.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// SetResetToken stores token as the pending reset token of the account.
	// It returns common.ErrorNotFound if no such account exists.
	SetResetToken(ctx context.Context, email, token string) error

	// UpdatePassword replaces the password hash and clears any pending reset
	// token in one write. It returns common.ErrorNotFound if no such account
	// exists.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
