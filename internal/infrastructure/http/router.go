package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sirpyerre/agenda/internal/infrastructure/http/handlers"
)

// RegisterOps mounts the operational endpoints on e: health probes, the
// Prometheus scrape endpoint and the Swagger UI. It also installs the
// request metrics middleware, so it must be called once per process.
func RegisterOps(e *echo.Echo, checks map[string]handlers.Check) {
	e.Use(echoprometheus.NewMiddleware("agenda"))

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
