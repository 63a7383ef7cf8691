package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sheetparse/internal/service"
)

const (
	apiName    = "Excel/CSV Parser API"
	apiVersion = "1.0.0"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, svc service.ParserService) {
	app.Get("/", Root())
	app.Get("/health", HealthCheck())
	app.Get("/healthz", LivenessProbe())

	parse := ParseSpreadsheet(svc)
	app.Post("/parse-excel", parse)
	// Compatibility alias: must stay identical to /parse-excel.
	app.Post("/parse-base64", parse)

	app.Post("/parse-object", ParseObject(svc))
}

// RegisterMetrics exposes the Prometheus registry at /metrics.
func RegisterMetrics(app *fiber.App, g prometheus.Gatherer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}

// Root describes the running service.
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": apiName,
			"version": apiVersion,
			"status":  "running",
		})
	}
}

// HealthCheck reports readiness. The service has no external dependencies
// on the request path, so it is healthy whenever it can answer.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is the bare liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
