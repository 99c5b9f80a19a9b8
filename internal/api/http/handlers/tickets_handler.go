package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-queue/internal/api/dto"
	"github.com/spec-kit/ticket-queue/internal/domain"
	"github.com/spec-kit/ticket-queue/internal/service"
	apperrors "github.com/spec-kit/ticket-queue/pkg/util/errorutil"
)

// TicketsHandler exposes ticket registration, lookup and mutation.
type TicketsHandler struct {
	manager     *service.TicketManager
	technicians []string
}

// NewTicketsHandler constructs handler. An empty roster accepts any technician name.
func NewTicketsHandler(manager *service.TicketManager, technicians []string) *TicketsHandler {
	return &TicketsHandler{manager: manager, technicians: technicians}
}

// ListTickets GET /tickets. The search query narrows first, then the status filter.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	var tickets []domain.Ticket
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tickets = h.manager.SearchTickets(q)
	} else {
		tickets = h.manager.GetAllTickets()
	}

	if raw := c.Query("status"); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			return err
		}
		tickets = filterByStatus(tickets, status)
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Client = strings.TrimSpace(req.Client)

	missing := []string{}
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Client == "" {
		missing = append(missing, "client")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("title, description, client required", map[string]any{"missing": missing})
	}

	priority, ok := domain.ParsePriority(req.Priority)
	if !ok {
		return apperrors.NewValidationError("invalid priority", map[string]any{
			"priority": req.Priority,
			"allowed":  domain.Priorities(),
		})
	}

	ticket := h.manager.CreateTicket(c.UserContext(), req.Title, req.Description, req.Client, priority)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, ok := h.manager.GetTicketByID(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return err
	}

	ticket, err := h.manager.ChangeStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return managerError(err, c.Params("id"))
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// AssignTicket POST /tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	technician := strings.TrimSpace(req.Technician)
	if technician == "" {
		return apperrors.NewValidationError("technician required", nil)
	}
	if !onRoster(h.technicians, technician) {
		return apperrors.NewValidationError("unknown technician", map[string]any{
			"technician": technician,
			"allowed":    h.technicians,
		})
	}

	ticket, err := h.manager.Assign(c.UserContext(), c.Params("id"), technician)
	if err != nil {
		return managerError(err, c.Params("id"))
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

func parseStatus(raw string) (domain.TicketStatus, error) {
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return "", apperrors.NewValidationError("invalid status", map[string]any{
			"status":  raw,
			"allowed": domain.Statuses(),
		})
	}
	return status, nil
}

func filterByStatus(tickets []domain.Ticket, status domain.TicketStatus) []domain.Ticket {
	out := tickets[:0]
	for _, t := range tickets {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func onRoster(roster []string, name string) bool {
	if len(roster) == 0 {
		return true
	}
	for _, candidate := range roster {
		if candidate == name {
			return true
		}
	}
	return false
}

func managerError(err error, id string) error {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	case errors.Is(err, service.ErrInvalidStatus):
		return apperrors.NewValidationError("invalid status", map[string]any{"allowed": domain.Statuses()})
	case errors.Is(err, service.ErrInvalidTransition):
		return apperrors.NewConflict(err.Error(), map[string]any{"id": id})
	default:
		return apperrors.NewInternalError(err)
	}
}
