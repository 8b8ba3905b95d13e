package server

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwapRequest handles POST /api/swap-requests
func (s *Server) CreateSwapRequest(c *fiber.Ctx) error {
	var req service.CreateSwapInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.Create(c.UserContext(), s.currentUser(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"swap_request": swap,
	})
}

// ListSwapRequests handles GET /api/swap-requests
// Supports type (all|sent|received), status, page and limit query parameters.
// "box" is accepted as an alias for "type".
func (s *Server) ListSwapRequests(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	box := c.Query("type", c.Query("box", string(repository.SwapBoxAll)))
	filter := repository.SwapFilter{
		Box:    repository.SwapBox(box),
		Status: models.SwapStatus(c.Query("status")),
		Page:   p.Page,
		Limit:  p.Limit,
	}

	swaps, total, err := s.swapService.List(c.UserContext(), s.currentUser(c).ID, filter)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(paginated(swaps, p, total))
}

// GetSwapRequest handles GET /api/swap-requests/:id
func (s *Server) GetSwapRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Get(c.UserContext(), s.currentUser(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"swap_request": swap,
	})
}

// AcceptSwapRequest handles PATCH /api/swap-requests/:id/accept
func (s *Server) AcceptSwapRequest(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Accept)
}

// RejectSwapRequest handles PATCH /api/swap-requests/:id/reject
func (s *Server) RejectSwapRequest(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Reject)
}

// CompleteSwapRequest handles PATCH /api/swap-requests/:id/complete
func (s *Server) CompleteSwapRequest(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Complete)
}

// transitionSwap applies a lifecycle transition taking only the actor and id.
func (s *Server) transitionSwap(c *fiber.Ctx, transition func(ctx context.Context, actor *models.User, id uint) (*models.SwapRequest, error)) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := transition(c.UserContext(), s.currentUser(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"swap_request": swap,
	})
}

// CancelSwapRequest handles PATCH /api/swap-requests/:id/cancel
func (s *Server) CancelSwapRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c,
				models.NewValidationError("Invalid request body"))
		}
	}

	swap, err := s.swapService.Cancel(c.UserContext(), s.currentUser(c), id, req.Reason)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"swap_request": swap,
	})
}

// DeleteSwapRequest handles DELETE /api/swap-requests/:id
func (s *Server) DeleteSwapRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.swapService.Delete(c.UserContext(), s.currentUser(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Swap request deleted",
	})
}

// ReportSwapRequest handles POST /api/swap-requests/:id/report
func (s *Server) ReportSwapRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.ReportInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.Report(c.UserContext(), s.currentUser(c), id, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"swap_request": swap,
	})
}
