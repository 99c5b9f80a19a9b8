package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-queue/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Tickets     *handlers.TicketsHandler
	Queues      *handlers.QueuesHandler
	Actions     *handlers.ActionsHandler
	Metrics     *handlers.MetricsHandler
	Technicians *handlers.TechniciansHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/assign", cfg.Tickets.AssignTicket)

	queues := app.Group("/queues")
	queues.Get("/:status", cfg.Queues.ListQueue)
	queues.Get("/:status/next", cfg.Queues.NextTicket)
	queues.Post("/:status/process", cfg.Queues.ProcessNext)

	actions := app.Group("/actions")
	actions.Get("/", cfg.Actions.RecentActions)
	actions.Post("/undo", cfg.Actions.Undo)

	app.Get("/metrics", cfg.Metrics.GetMetrics)

	technicians := app.Group("/technicians")
	technicians.Get("/", cfg.Technicians.ListTechnicians)
	technicians.Get("/:name/tickets", cfg.Technicians.TechnicianTickets)
	technicians.Get("/:name/metrics", cfg.Technicians.TechnicianMetrics)
}
