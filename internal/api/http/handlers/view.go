package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/features"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
	"github.com/spec-kit/job-portal/web"
)

// View renders pages inside the shared layout with the data every page needs.
type View struct {
	features *features.Set
	appName  string
}

// NewView constructs a View.
func NewView(flags *features.Set, appName string) *View {
	return &View{features: flags, appName: appName}
}

// Render writes the named template with status.
func (v *View) Render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	bind := fiber.Map{
		"AppName":  v.appName,
		"Features": v.features.All(),
		"Errors":   map[string]any{},
		"Values":   url.Values{},
		"Error":    "",
		"IsAdmin":  false,
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		bind["User"] = identity
		bind["IsAdmin"] = identity.IsAdmin()
	}
	for k, val := range data {
		bind[k] = val
	}
	return c.Status(status).Render(name, bind, web.Layout)
}

// RenderError writes an error page, or a JSON error body for API clients.
func (v *View) RenderError(c *fiber.Ctx, de *apperrors.DomainError) error {
	if WantsJSON(c) {
		return c.Status(de.HTTPStatus).JSON(dto.ErrorResponse{
			Error:   de.Message,
			Code:    de.Code,
			Details: de.Details,
		})
	}
	return v.Render(c, de.HTTPStatus, "error", fiber.Map{
		"Title":   de.Title,
		"Message": de.Message,
	})
}

// WantsJSON reports whether the client should get JSON instead of HTML.
func WantsJSON(c *fiber.Ctx) bool {
	path := c.Path()
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/schema/") {
		return true
	}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return true
	}
	accept := c.Get(fiber.HeaderAccept)
	if accept == "" {
		return false
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// jobRoleID parses the :id route parameter as a positive integer.
func jobRoleID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid job role id.", nil)
	}
	return id, nil
}

func detailsToErrors(details map[string]any) map[string]any {
	if details == nil {
		return map[string]any{}
	}
	return details
}
