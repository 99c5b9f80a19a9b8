package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-queue/internal/api/dto"
	"github.com/spec-kit/ticket-queue/internal/service"
	apperrors "github.com/spec-kit/ticket-queue/pkg/util/errorutil"
)

// TechniciansHandler exposes the roster and per-technician views.
type TechniciansHandler struct {
	manager     *service.TicketManager
	technicians []string
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(manager *service.TicketManager, technicians []string) *TechniciansHandler {
	return &TechniciansHandler{manager: manager, technicians: technicians}
}

// ListTechnicians GET /technicians.
func (h *TechniciansHandler) ListTechnicians(c *fiber.Ctx) error {
	roster := append([]string{}, h.technicians...)
	return c.JSON(fiber.Map{"data": roster})
}

// TechnicianTickets GET /technicians/:name/tickets?status=.
func (h *TechniciansHandler) TechnicianTickets(c *fiber.Ctx) error {
	name, err := h.technicianParam(c)
	if err != nil {
		return err
	}
	tickets := h.manager.GetTicketsByTechnician(name)
	if raw := c.Query("status"); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			return err
		}
		tickets = filterByStatus(tickets, status)
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// TechnicianMetrics GET /technicians/:name/metrics.
func (h *TechniciansHandler) TechnicianMetrics(c *fiber.Ctx) error {
	name, err := h.technicianParam(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.manager.GetTechnicianMetrics(name)})
}

func (h *TechniciansHandler) technicianParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return "", apperrors.NewValidationError("invalid technician name", map[string]any{"name": c.Params("name")})
	}
	if !onRoster(h.technicians, name) {
		return "", apperrors.NewNotFound("technician", map[string]any{"name": name})
	}
	return name, nil
}
