// Package copygeninfra exposes the AI email-copy routes.
package copygeninfra

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postwave/postwave/pkg/copygen"
	"github.com/postwave/postwave/pkg/copygen/copygensrv"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/iam/auth"
)

// Handlers exposes the copy-generation HTTP surface.
type Handlers struct {
	service *copygensrv.Service
}

// NewHandlers creates the copygen handlers.
func NewHandlers(service *copygensrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /ai-email routes behind authentication.
func (h *Handlers) RegisterRoutes(app *fiber.App, authenticate fiber.Handler) {
	grp := app.Group("/ai-email", authenticate)
	grp.Post("/generate", h.generate)
}

func (h *Handlers) generate(c *fiber.Ctx) error {
	if ac := auth.FromContext(c); ac == nil {
		return errx.Unauthorized("authentication required")
	}
	var req copygen.CopyRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Validation("invalid request body")
	}
	result, err := h.service.Generate(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
