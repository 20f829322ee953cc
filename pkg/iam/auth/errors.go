package auth

import "github.com/postwave/postwave/pkg/errx"

var authErrors = errx.NewRegistry("AUTH")

var (
	ErrInvalidCredentials = authErrors.Register("INVALID_CREDENTIALS", errx.TypeValidation, 400, "Invalid email or password")
	ErrEmailTaken         = authErrors.Register("EMAIL_TAKEN", errx.TypeConflict, 409, "Email already exists")
	ErrInvalidToken       = authErrors.Register("INVALID_TOKEN", errx.TypeAuthorization, 401, "Invalid or expired token")
	ErrUserNotFound       = authErrors.Register("USER_NOT_FOUND", errx.TypeNotFound, 404, "User not found")
	ErrTokenGeneration    = authErrors.Register("TOKEN_GENERATION", errx.TypeInternal, 500, "Failed to generate token")
)

// NewInvalidCredentialsError builds the login failure error.
func NewInvalidCredentialsError() *errx.Error { return authErrors.New(ErrInvalidCredentials) }

// NewEmailTakenError builds the duplicate-registration error.
func NewEmailTakenError() *errx.Error { return authErrors.New(ErrEmailTaken) }

// NewUserNotFoundError builds the missing-user error.
func NewUserNotFoundError() *errx.Error { return authErrors.New(ErrUserNotFound) }
