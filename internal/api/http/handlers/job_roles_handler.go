package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// JobRolesHandler serves job role browsing and administration pages.
type JobRolesHandler struct {
	service *service.JobRoleService
	view    *View
}

// NewJobRolesHandler constructs handler.
func NewJobRolesHandler(jobRoleService *service.JobRoleService, view *View) *JobRolesHandler {
	return &JobRolesHandler{service: jobRoleService, view: view}
}

// List GET /job-roles.
func (h *JobRolesHandler) List(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	list, err := h.service.List(c.UserContext(), identity)
	if err != nil {
		return err
	}
	if WantsJSON(c) {
		return c.JSON(list)
	}
	return h.view.Render(c, fiber.StatusOK, "job-roles/list", fiber.Map{
		"Title":     "Job Roles",
		"JobRoles":  list.JobRoles,
		"CanDelete": list.CanDelete,
	})
}

// Detail GET /job-roles/:id.
func (h *JobRolesHandler) Detail(c *fiber.Ctx) error {
	id, err := jobRoleID(c)
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)
	detail, err := h.service.Get(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	if WantsJSON(c) {
		return c.JSON(detail)
	}
	return h.view.Render(c, fiber.StatusOK, "job-roles/detail", fiber.Map{
		"Title":     detail.JobRole.RoleName,
		"JobRole":   detail.JobRole,
		"CanDelete": detail.CanDelete,
	})
}

// AddRolePage GET /add-role.
func (h *JobRolesHandler) AddRolePage(c *fiber.Ctx) error {
	ref, err := h.service.ReferenceData(c.UserContext())
	if err != nil {
		return err
	}
	return h.renderAddRole(c, fiber.StatusOK, ref, url.Values{}, "", nil)
}

// CreateRole POST /add-role.
func (h *JobRolesHandler) CreateRole(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	values := formValues(c)

	_, err := h.service.Create(c.UserContext(), identity, values)
	if err == nil {
		return c.Redirect("/job-roles", fiber.StatusFound)
	}

	de := apperrors.ToDomainError(err)
	switch de.Code {
	case apperrors.CodeValidationFailed, apperrors.CodeUpstreamConflict, apperrors.CodeUpstreamFailure:
	default:
		return err
	}

	ref, refErr := h.service.ReferenceData(c.UserContext())
	if refErr != nil {
		ref = &domain.ReferenceData{}
	}
	return h.renderAddRole(c, de.HTTPStatus, ref, values, de.Message, de.Details)
}

func (h *JobRolesHandler) renderAddRole(c *fiber.Ctx, status int, ref *domain.ReferenceData, values url.Values, message string, fieldErrs map[string]any) error {
	return h.view.Render(c, status, "job-roles/add", fiber.Map{
		"Title":     "Add Job Role",
		"Reference": ref,
		"Values":    values,
		"Error":     message,
		"Errors":    detailsToErrors(fieldErrs),
	})
}

// DeleteRole POST /job-roles/:id/delete.
func (h *JobRolesHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := jobRoleID(c)
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)
	if err := h.service.Delete(c.UserContext(), identity, id); err != nil {
		return err
	}
	if WantsJSON(c) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect("/job-roles", fiber.StatusFound)
}

// formValues collects the url-encoded or multipart form body.
func formValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for k, vs := range mf.Value {
			values[k] = append([]string(nil), vs...)
		}
		return values
	}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}
