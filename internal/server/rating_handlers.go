package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitRating handles POST /api/ratings
func (s *Server) SubmitRating(c *fiber.Ctx) error {
	var req service.SubmitRatingInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.Submit(c.UserContext(), s.currentUser(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"rating": rating,
	})
}

// EditRating handles PUT /api/ratings/:id
func (s *Server) EditRating(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.EditRatingInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.Edit(c.UserContext(), s.currentUser(c), id, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"rating": rating,
	})
}

// DeleteRating handles DELETE /api/ratings/:id
func (s *Server) DeleteRating(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.ratingService.Delete(c.UserContext(), s.currentUser(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Rating deleted",
	})
}

// GetUserRatings handles GET /api/ratings/user/:userId
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	ratings, total, err := s.ratingService.ListForUser(c.UserContext(), userID, p.Page, p.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(paginated(ratings, p, total))
}

// GetUserRatingSummary handles GET /api/ratings/average/:userId
func (s *Server) GetUserRatingSummary(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	summary, err := s.ratingService.SummaryFor(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(summary)
}
