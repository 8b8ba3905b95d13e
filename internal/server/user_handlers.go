package server

import (
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BrowseUsers handles GET /api/users
// Supports skill, location, page and limit query parameters. Only active,
// public profiles are listed, best rated first.
func (s *Server) BrowseUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.UserFilter{
		Skill:    c.Query("skill"),
		Location: c.Query("location"),
		Page:     p.Page,
		Limit:    p.Limit,
	}

	users, total, err := s.userService.ListUsers(c.UserContext(), filter)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(paginated(users, p, total))
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user": s.currentUser(c),
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	user := s.currentUser(c)
	return s.updateProfile(c, user.ID)
}

// GetUserProfile handles GET /api/users/:id
// Private profiles are only visible to their owner and to admins.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.UserContext(), s.currentUser(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

// UpdateUserProfile handles PUT /api/users/:id
// Only the profile owner and admins may update; the service enforces it.
func (s *Server) UpdateUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.updateProfile(c, id)
}

func (s *Server) updateProfile(c *fiber.Ctx, targetID uint) error {
	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), s.currentUser(c), targetID, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}
