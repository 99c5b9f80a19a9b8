package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-queue/internal/api/dto"
	"github.com/spec-kit/ticket-queue/internal/service"
)

// QueuesHandler exposes the per-status FIFO queues.
type QueuesHandler struct {
	manager *service.TicketManager
}

// NewQueuesHandler constructs handler.
func NewQueuesHandler(manager *service.TicketManager) *QueuesHandler {
	return &QueuesHandler{manager: manager}
}

// ListQueue GET /queues/:status.
func (h *QueuesHandler) ListQueue(c *fiber.Ctx) error {
	status, err := parseStatus(c.Params("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(h.manager.GetTicketsByStatus(status))})
}

// NextTicket GET /queues/:status/next. An empty queue yields null data.
func (h *QueuesHandler) NextTicket(c *fiber.Ctx) error {
	status, err := parseStatus(c.Params("status"))
	if err != nil {
		return err
	}
	ticket := h.manager.GetNextTicket(status)
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ProcessNext POST /queues/:status/process.
func (h *QueuesHandler) ProcessNext(c *fiber.Ctx) error {
	status, err := parseStatus(c.Params("status"))
	if err != nil {
		return err
	}
	ticket := h.manager.ProcessNextTicket(c.UserContext(), status)
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}
