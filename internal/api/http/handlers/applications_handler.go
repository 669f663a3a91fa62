package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
)

// ApplicationsHandler serves the apply form and forwards CV uploads.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	jobRoles     *service.JobRoleService
	view         *View
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService, jobRoles *service.JobRoleService, view *View) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications, jobRoles: jobRoles, view: view}
}

// ApplyPage GET /job-roles/:id/apply.
func (h *ApplicationsHandler) ApplyPage(c *fiber.Ctx) error {
	id, err := jobRoleID(c)
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)
	detail, err := h.jobRoles.Get(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	if err := h.applications.CheckAccepting(detail.JobRole); err != nil {
		return err
	}
	return h.view.Render(c, fiber.StatusOK, "job-roles/apply", fiber.Map{
		"Title":   "Apply",
		"JobRole": detail.JobRole,
	})
}

// Apply POST /job-roles/:id/apply.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	id, err := jobRoleID(c)
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)

	// A request without a readable cv part is treated as a missing CV.
	var cv *domain.CVUpload
	if file, err := c.FormFile("cv"); err == nil {
		cv = &domain.CVUpload{
			FileName:    file.Filename,
			ContentType: file.Header.Get(fiber.HeaderContentType),
			Size:        file.Size,
			Open: func() (io.ReadCloser, error) {
				return file.Open()
			},
		}
	}

	receipt, err := h.applications.Submit(c.UserContext(), identity, id, cv)
	if err != nil {
		return err
	}
	if WantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(receipt)
	}
	return c.Redirect("/application-success", fiber.StatusFound)
}
