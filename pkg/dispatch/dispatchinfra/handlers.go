package dispatchinfra

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/postwave/postwave/pkg/dispatch"
	"github.com/postwave/postwave/pkg/errx"
	"github.com/postwave/postwave/pkg/iam/auth"
	"github.com/postwave/postwave/pkg/kernel"
)

// Handlers exposes the email-dispatch HTTP surface.
type Handlers struct {
	service *dispatch.Service
}

// NewHandlers creates the dispatch handlers.
func NewHandlers(service *dispatch.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /email routes, all behind authentication.
func (h *Handlers) RegisterRoutes(app *fiber.App, authenticate fiber.Handler) {
	grp := app.Group("/email", authenticate)
	grp.Post("/send", h.sendPlain)
	grp.Post("/send/newsletter", h.sendNewsletter)
	grp.Post("/send/transactional", h.sendTransactional)
	grp.Get("/logs", h.logs)
}

func requireAuth(c *fiber.Ctx) (*kernel.AuthContext, error) {
	ac := auth.FromContext(c)
	if ac == nil {
		return nil, errx.Unauthorized("authentication required")
	}
	return ac, nil
}

// sendRequest is the flat JSON body of a plain send.
type sendRequest struct {
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	ToEmails  []string `json:"to_emails"`
	GroupIDs  []string `json:"group_ids"`
	SendToAll bool     `json:"send_to_all"`
}

func (r sendRequest) addressSpec() dispatch.AddressSpec {
	return dispatch.AddressSpec{
		Explicit:  r.ToEmails,
		GroupIDs:  r.GroupIDs,
		SendToAll: r.SendToAll,
	}
}

func (h *Handlers) sendPlain(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	var in sendRequest
	if err := c.BodyParser(&in); err != nil {
		return errx.Validation("invalid request body")
	}
	result, err := h.service.SendPlain(c.Context(), ac.UserID, dispatch.PlainRequest{
		Subject: in.Subject,
		Body:    in.Body,
		Address: in.addressSpec(),
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) sendNewsletter(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return errx.Validation("multipart form data is required")
	}
	images, err := readParts(form.File["images"])
	if err != nil {
		return err
	}
	result, err := h.service.SendNewsletter(c.Context(), ac.UserID, dispatch.NewsletterRequest{
		Subject: formValue(form, "subject"),
		Body:    formValue(form, "body"),
		Address: formAddressSpec(form),
		Images:  images,
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) sendTransactional(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return errx.Validation("multipart form data is required")
	}
	attachments, err := readParts(form.File["attachments"])
	if err != nil {
		return err
	}
	result, err := h.service.SendTransactional(c.Context(), ac.UserID, dispatch.TransactionalRequest{
		Subject:     formValue(form, "subject"),
		Body:        formValue(form, "body"),
		Address:     formAddressSpec(form),
		Attachments: attachments,
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) logs(c *fiber.Ctx) error {
	ac, err := requireAuth(c)
	if err != nil {
		return err
	}
	opts := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	}
	page, err := h.service.Logs(c.Context(), ac.UserID, opts)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// formAddressSpec reads the addressing fields of a multipart send:
// to_emails and group_ids are comma-separated, send_to_all is a bool flag.
func formAddressSpec(form *multipart.Form) dispatch.AddressSpec {
	sendToAll, _ := strconv.ParseBool(formValue(form, "send_to_all"))
	return dispatch.AddressSpec{
		Explicit:  splitList(formValue(form, "to_emails")),
		GroupIDs:  splitList(formValue(form, "group_ids")),
		SendToAll: sendToAll,
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func readParts(headers []*multipart.FileHeader) ([]dispatch.Part, error) {
	parts := make([]dispatch.Part, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			return nil, errx.Wrap(err, "failed to open upload", errx.TypeInternal)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, errx.Wrap(err, "failed to read upload", errx.TypeInternal)
		}
		parts = append(parts, dispatch.Part{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return parts, nil
}
