package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nationsapi/nations-service/internal/api/http/handlers"
	"github.com/nationsapi/nations-service/internal/auth"
	"github.com/nationsapi/nations-service/internal/observability"
)

// APIPrefix groups every nations endpoint.
const APIPrefix = "/nationapi"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Nations     *handlers.NationsHandler
	Gate        *auth.Gate
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	MetricsPath string
}

// RegisterRoutes wires HTTP routes. Nations routes run the gate and then
// require an identity; register and authenticate are public.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		app.Get(cfg.MetricsPath, adaptor.HTTPHandler(
			promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{}),
		))
	}

	api := app.Group(APIPrefix)
	api.Post("/register", cfg.Auth.Register)
	api.Post("/authenticate", cfg.Auth.Authenticate)

	gate := observability.TraceHandler(cfg.Logger, "AuthenticationGate.Handle", cfg.Gate.Handle)
	requireIdentity := auth.RequireIdentity()

	api.Get("/countries", gate, requireIdentity, cfg.Nations.Countries)
	api.Get("/languages/:countryName", gate, requireIdentity, cfg.Nations.Languages)
	api.Get("/maxgdppercapita", gate, requireIdentity, cfg.Nations.MaxGDPPerCapita)
	api.Get("/stats", gate, requireIdentity, cfg.Nations.Stats)
}
