// Package suppressioninfra exposes the public unsubscribe endpoint.
package suppressioninfra

import (
	"net/mail"

	"github.com/gofiber/fiber/v2"
	"github.com/postwave/postwave/pkg/logx"
	"github.com/postwave/postwave/pkg/suppression"
)

// Handlers exposes the unsubscribe HTTP surface. The routes are public:
// they are reached from links and one-click headers in delivered mail, so
// no session exists.
type Handlers struct {
	store suppression.Store
}

// NewHandlers creates the unsubscribe handlers.
func NewHandlers(store suppression.Store) *Handlers {
	return &Handlers{store: store}
}

// RegisterRoutes mounts the unsubscribe routes without authentication.
// POST serves RFC 8058 one-click unsubscribes; GET serves link clicks.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/unsubscribe", h.unsubscribe)
	app.Post("/unsubscribe", h.unsubscribe)
}

func (h *Handlers) unsubscribe(c *fiber.Ctx) error {
	email := c.Query("email")
	if _, err := mail.ParseAddress(email); err != nil {
		return suppression.NewInvalidEmailError()
	}
	if err := h.store.Add(c.Context(), email); err != nil {
		return err
	}
	logx.Infof("unsubscribed %s", email)
	return c.JSON(fiber.Map{"message": "You have been unsubscribed"})
}
