package authinfra

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/iam/auth/authsrv"
)

// Handlers exposes the auth HTTP surface.
type Handlers struct {
	service *authsrv.Service
}

// NewHandlers creates the auth handlers.
func NewHandlers(service *authsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /auth routes on the app.
func (h *Handlers) RegisterRoutes(app *fiber.App, authenticate fiber.Handler) {
	grp := app.Group("/auth")
	grp.Post("/register", h.register)
	grp.Post("/login", h.login)
	grp.Get("/me", authenticate, h.me)
}

func (h *Handlers) register(c *fiber.Ctx) error {
	var in authsrv.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	if err := h.service.Register(c.Context(), in); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "registered"})
}

func (h *Handlers) login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	result, err := h.service.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) me(c *fiber.Ctx) error {
	ac := auth.FromContext(c)
	if ac == nil {
		return errx.Unauthorized("authentication required")
	}
	user, err := h.service.Me(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":           user.ID.String(),
		"email":        user.Email,
		"name":         user.Name,
		"company_name": user.CompanyName,
		"phone":        user.Phone,
	})
}
