// Package auth provides account registration, login, JWT issuance, and the
// Fiber middleware that turns a bearer token into a kernel.AuthContext.
package auth

import (
	"time"

	"github.com/postwave/postwave/pkg/kernel"
)

// User is a registered account. A user is the tenancy boundary: contacts,
// groups, and email logs all hang off a user id.
type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Email        string        `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Name         string        `db:"name" json:"name"`
	CompanyName  string        `db:"company_name" json:"company_name"`
	Phone        string        `db:"phone" json:"phone"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// TokenClaims is the decoded content of a validated access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
