// Package authsrv implements registration and login on top of the auth ports.
package authsrv

import (
	"context"
	"time"

	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/kernel"
	"golang.org/x/crypto/bcrypt"
)

// Service handles account registration and login.
type Service struct {
	users  auth.UserRepository
	tokens auth.TokenService
}

// NewService creates the auth service.
func NewService(users auth.UserRepository, tokens auth.TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
}

// Register creates a new account with a bcrypt-hashed credential.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if in.Email == "" || in.Password == "" {
		return errx.Validation("email and password are required")
	}

	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return auth.NewEmailTakenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	user := auth.User{
		ID:           kernel.NewUserID(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		CompanyName:  in.CompanyName,
		Phone:        in.Phone,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.Save(ctx, user)
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Login verifies credentials and issues an access token. Invalid email and
// invalid password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, auth.NewInvalidCredentialsError()
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, auth.NewInvalidCredentialsError()
	}

	token, err := s.tokens.GenerateAccessToken(*user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Email: user.Email, Token: token}, nil
}

// Me returns the account for an authenticated user id.
func (s *Service) Me(ctx context.Context, id kernel.UserID) (*auth.User, error) {
	return s.users.FindByID(ctx, id)
}
