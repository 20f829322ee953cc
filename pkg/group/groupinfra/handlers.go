package groupinfra

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/group"
	"github.com/postwave/postwave/pkg/group/groupsrv"
	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/kernel"
)

// Handlers exposes the group HTTP surface.
type Handlers struct {
	service *groupsrv.Service
}

// NewHandlers creates the group handlers.
func NewHandlers(service *groupsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /groups routes, all behind authentication.
func (h *Handlers) RegisterRoutes(app *fiber.App, authenticate fiber.Handler) {
	grp := app.Group("/groups", authenticate)
	grp.Post("/", h.create)
	grp.Get("/", h.list)
	grp.Get("/:id", h.get)
	grp.Put("/:id", h.update)
	grp.Delete("/:id", h.delete)
}

// groupResponse is the wire shape for a group.
type groupResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"group_name"`
	ContactIDs []string `json:"contact_ids"`
	CreatedAt  string   `json:"created_at"`
}

func toResponse(g *group.Group) groupResponse {
	ids := make([]string, len(g.ContactIDs))
	for i, id := range g.ContactIDs {
		ids[i] = id.String()
	}
	return groupResponse{
		ID:         g.ID.String(),
		Name:       g.Name,
		ContactIDs: ids,
		CreatedAt:  g.CreatedAt.Format(time.RFC3339),
	}
}

func requireAuth(c *fiber.Ctx) (*kernel.AuthContext, error) {
	ac := auth.FromContext(c)
	if ac == nil {
		return nil, errx.Unauthorized("authentication required")
	}
	return ac, nil
}

func parseGroupID(c *fiber.Ctx) (kernel.GroupID, error) {
	id, ok := kernel.ParseGroupID(c.Params("id"))
	if !ok {
		return "", group.NewNotFoundError()
	}
	return id, nil
}

func (h *Handlers) create(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	var in groupsrv.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	created, err := h.service.Create(c.Context(), ac.UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(created))
}

func (h *Handlers) list(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	groups, err := h.service.List(c.Context(), ac.UserID)
	if err != nil {
		return err
	}
	out := make([]groupResponse, len(groups))
	for i := range groups {
		out[i] = toResponse(&groups[i])
	}
	return c.JSON(out)
}

func (h *Handlers) get(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, err := parseGroupID(c)
	if err != nil {
		return err
	}
	g, err := h.service.Get(c.Context(), ac.UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(g))
}

func (h *Handlers) update(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, err := parseGroupID(c)
	if err != nil {
		return err
	}
	var in groupsrv.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	updated, err := h.service.Update(c.Context(), ac.UserID, id, in)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(updated))
}

func (h *Handlers) delete(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, err := parseGroupID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), ac.UserID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Group deleted successfully"})
}
