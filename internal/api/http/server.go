package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/api/http/handlers"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/features"
	"github.com/spec-kit/job-portal/internal/form"
	"github.com/spec-kit/job-portal/internal/observability"
	"github.com/spec-kit/job-portal/internal/persistence"
	"github.com/spec-kit/job-portal/internal/service"
	"github.com/spec-kit/job-portal/web"
)

// ServerDependencies is everything NewServer wires together.
type ServerDependencies struct {
	Config       *config.Config
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Redis        *persistence.Redis
	Features     *features.Set
	Gate         *auth.Gate
	Validator    *form.Validator
	Auth         *service.AuthService
	JobRoles     *service.JobRoleService
	Applications *service.ApplicationService
	LoginLimiter *RateLimiter
}

// NewViewEngine loads the embedded templates.
func NewViewEngine() *html.Engine {
	engine := html.NewFileSystem(web.Views(), ".html")
	for name, fn := range web.Funcs() {
		engine.AddFunc(name, fn)
	}
	return engine
}

// NewServer builds the fiber application.
func NewServer(deps ServerDependencies) *fiber.App {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		Views:                 NewViewEngine(),
		BodyLimit:             cfg.App.BodyLimit(),
		DisableStartupMessage: true,
	})

	view := handlers.NewView(deps.Features, cfg.App.Name)
	RegisterMiddlewares(app, logger, deps.Metrics, view, cfg.App.RequestTimeout(), cfg.Auth.CookieSecure)

	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))

	var metricsHandler fiber.Handler
	if deps.Metrics != nil {
		metricsHandler = adaptor.HTTPHandler(deps.Metrics.Handler())
	}

	validator := deps.Validator
	if validator == nil {
		validator = form.NewValidator(nil)
	}

	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Redis),
		Pages:        handlers.NewPagesHandler(view),
		Auth:         handlers.NewAuthHandler(deps.Auth, validator, view, cfg.Auth.CookieSecure),
		JobRoles:     handlers.NewJobRolesHandler(deps.JobRoles, view),
		Applications: handlers.NewApplicationsHandler(deps.Applications, deps.JobRoles, view),
		Gate:         deps.Gate,
		Features:     deps.Features,
		LoginLimiter: deps.LoginLimiter,
		Metrics:      metricsHandler,
	})

	return app
}
