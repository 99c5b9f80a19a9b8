package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-queue/internal/api/dto"
	"github.com/spec-kit/ticket-queue/internal/service"
	apperrors "github.com/spec-kit/ticket-queue/pkg/util/errorutil"
)

const defaultActionLimit = 10

// ActionsHandler exposes the action history.
type ActionsHandler struct {
	manager *service.TicketManager
}

// NewActionsHandler constructs handler.
func NewActionsHandler(manager *service.TicketManager) *ActionsHandler {
	return &ActionsHandler{manager: manager}
}

// RecentActions GET /actions?limit=.
func (h *ActionsHandler) RecentActions(c *fiber.Ctx) error {
	limit := defaultActionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apperrors.NewValidationError("limit must be a non-negative integer", map[string]any{"limit": raw})
		}
		limit = parsed
	}
	return c.JSON(fiber.Map{"data": dto.NewActionResponses(h.manager.GetRecentActions(limit))})
}

// Undo POST /actions/undo. Only the history entry is removed.
func (h *ActionsHandler) Undo(c *fiber.Ctx) error {
	action, ok := h.manager.UndoLastAction(c.UserContext())
	if !ok {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewActionResponse(action)})
}
