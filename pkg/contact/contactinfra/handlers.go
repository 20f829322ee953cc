package contactinfra

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postwave/postwave/pkg/contact/contactsrv"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/kernel"
)

// Handlers exposes the contact HTTP surface.
type Handlers struct {
	service *contactsrv.Service
}

// NewHandlers creates the contact handlers.
func NewHandlers(service *contactsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /contacts routes, all behind authentication.
func (h *Handlers) RegisterRoutes(app *fiber.App, authenticate fiber.Handler) {
	grp := app.Group("/contacts", authenticate)
	grp.Post("/", h.create)
	grp.Get("/", h.list)
	grp.Put("/:id", h.update)
	grp.Delete("/:id", h.delete)
	grp.Post("/parse-import", h.parseImport)
	grp.Post("/bulk", h.bulkCreate)
}

func requireAuth(c *fiber.Ctx) (*kernel.AuthContext, error) {
	ac := auth.FromContext(c)
	if ac == nil {
		return nil, errx.Unauthorized("authentication required")
	}
	return ac, nil
}

func (h *Handlers) create(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	var in contactsrv.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	created, err := h.service.Create(c.Context(), ac.UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(created)
}

func (h *Handlers) list(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	contacts, err := h.service.List(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(contacts)
}

func (h *Handlers) update(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, ok := kernel.ParseContactID(c.Params("id"))
	if !ok {
		return errx.Validation("invalid contact id")
	}
	var in contactsrv.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	updated, err := h.service.Update(c.Context(), ac.UserID, id, in)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, ok := kernel.ParseContactID(c.Params("id"))
	if !ok {
		return errx.Validation("invalid contact id")
	}
	if err := h.service.Delete(c.Context(), ac.UserID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Contact deleted"})
}

func (h *Handlers) parseImport(c *fiber.Ctx) error {
	if _, err := requireAuth(c); err != nil {
		return err
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errx.Validation("file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errx.Wrap(err, "failed to open upload", errx.TypeInternal)
	}
	defer file.Close()

	parsed, err := contactsrv.ParseImport(fileHeader.Filename, file)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"contacts": parsed, "count": len(parsed)})
}

func (h *Handlers) bulkCreate(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	var in contactsrv.BulkCreateInput
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	result, err := h.service.BulkCreate(c.Context(), ac.UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
