// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"
)

// User is one KnotHost account.
//
// Email is the natural key and is stored lowercased and trimmed.
// PasswordHash is a bcrypt digest; the plaintext is never stored.
// ResetToken is empty unless a password reset is in flight.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Verified     bool
	ResetToken   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail returns the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
