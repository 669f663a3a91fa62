package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/http/handlers"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/features"
)

// Messages shown when a feature is switched off.
const (
	MsgApplicationsDisabled = "Job applications are currently not available."
	MsgAddJobRoleDisabled   = "Adding job roles is currently not available."
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Pages        *handlers.PagesHandler
	Auth         *handlers.AuthHandler
	JobRoles     *handlers.JobRolesHandler
	Applications *handlers.ApplicationsHandler
	Gate         *auth.Gate
	Features     *features.Set
	LoginLimiter *RateLimiter
	Metrics      fiber.Handler
}

// RegisterRoutes wires HTTP routes. Authenticated routes run the auth gate,
// then the feature gate, then the role guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	app.Get("/", cfg.Pages.Index)
	app.Get("/application-success", cfg.Pages.ApplicationSuccess)
	app.Get("/schema/job-role.json", cfg.Pages.JobRoleSchema)

	app.Get("/login", cfg.Auth.LoginPage)
	if cfg.LoginLimiter != nil {
		app.Post("/login", cfg.LoginLimiter.Handler(), cfg.Auth.Login)
	} else {
		app.Post("/login", cfg.Auth.Login)
	}
	app.Post("/logout", cfg.Auth.Logout)

	gate := cfg.Gate.Handle
	applications := cfg.Features.Require(features.JobApplications, MsgApplicationsDisabled)
	addJobRole := cfg.Features.Require(features.AddJobRole, MsgAddJobRoleDisabled)
	admin := auth.RequireRole(domain.RoleAdmin)

	app.Get("/job-roles", gate, cfg.JobRoles.List)
	app.Get("/job-roles/:id", gate, cfg.JobRoles.Detail)
	app.Post("/job-roles/:id/delete", gate, admin, cfg.JobRoles.DeleteRole)

	app.Get("/job-roles/:id/apply", gate, applications, cfg.Applications.ApplyPage)
	app.Post("/job-roles/:id/apply", gate, applications, cfg.Applications.Apply)

	app.Get("/add-role", gate, addJobRole, admin, cfg.JobRoles.AddRolePage)
	app.Post("/add-role", gate, addJobRole, admin, cfg.JobRoles.CreateRole)
}
