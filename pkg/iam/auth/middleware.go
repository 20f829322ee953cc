package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/postwave/postwave/pkg/kernel"
)

// TokenMiddleware validates bearer tokens on protected routes.
type TokenMiddleware struct {
	tokenService TokenService
}

// NewAuthMiddleware creates the authentication middleware.
func NewAuthMiddleware(tokenService TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokenService: tokenService}
}

// Authenticate extracts and validates the bearer token, storing the
// resulting AuthContext in Fiber locals.
func (am *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
				token = parts[1]
			}
		}
		if token == "" {
			token = c.Cookies("access_token")
		}
		if token == "" {
			return authErrors.New(ErrInvalidToken)
		}

		claims, err := am.tokenService.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		c.Locals(kernel.AuthLocalKey, &kernel.AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		return c.Next()
	}
}

// FromContext returns the AuthContext stored by Authenticate, or nil.
func FromContext(c *fiber.Ctx) *kernel.AuthContext {
	ac, ok := c.Locals(kernel.AuthLocalKey).(*kernel.AuthContext)
	if !ok || !ac.IsValid() {
		return nil
	}
	return ac
}
