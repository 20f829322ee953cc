package auth

import (
	"context"

	"github.com/postwave/postwave/pkg/kernel"
)

// UserRepository is the persistence contract for accounts.
type UserRepository interface {
	Save(ctx context.Context, user User) error
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// TokenService is the contract for access-token management.
type TokenService interface {
	GenerateAccessToken(user User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
