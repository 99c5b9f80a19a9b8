package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-queue/internal/api/dto"
	"github.com/spec-kit/ticket-queue/internal/observability"
	"github.com/spec-kit/ticket-queue/internal/service"
)

// MetricsHandler reports manager metrics and request counters.
type MetricsHandler struct {
	manager *service.TicketManager
	metrics *observability.Metrics
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(manager *service.TicketManager, metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{manager: manager, metrics: metrics}
}

// GetMetrics GET /metrics.
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.MetricsResponse{
		Metrics:     h.manager.GetMetrics(),
		HistorySize: h.manager.HistorySize(),
		Counters:    h.metrics.Snapshot(),
	}})
}
