package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/form"
)

// PagesHandler serves the public pages and the shared form schema.
type PagesHandler struct {
	view *View
}

// NewPagesHandler constructs handler.
func NewPagesHandler(view *View) *PagesHandler {
	return &PagesHandler{view: view}
}

// Index GET /.
func (h *PagesHandler) Index(c *fiber.Ctx) error {
	return h.view.Render(c, fiber.StatusOK, "index", fiber.Map{"Title": "Kainos Job Roles"})
}

// ApplicationSuccess GET /application-success.
func (h *PagesHandler) ApplicationSuccess(c *fiber.Ctx) error {
	return h.view.Render(c, fiber.StatusOK, "application-success", fiber.Map{"Title": "Application Submitted"})
}

// JobRoleSchema GET /schema/job-role.json.
func (h *PagesHandler) JobRoleSchema(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.JSON(form.JobRoleSchema)
}
