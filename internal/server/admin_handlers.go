package server

import (
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /api/admin/dashboard
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	stats, err := s.adminService.Dashboard(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(stats)
}

// AdminListUsers handles GET /api/admin/users
// Supports search, role, status, page and limit query parameters.
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.AdminUserFilter{
		Search: c.Query("search"),
		Role:   models.UserRole(c.Query("role")),
		Status: models.UserStatus(c.Query("status")),
		Page:   p.Page,
		Limit:  p.Limit,
	}

	users, total, err := s.adminService.ListUsers(c.UserContext(), filter)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(paginated(users, p, total))
}

// AdminSetUserStatus handles PATCH /api/admin/users/:id/status
func (s *Server) AdminSetUserStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.UserStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.adminService.SetUserStatus(c.UserContext(), s.currentUser(c), id, req.Status)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

// AdminListSwaps handles GET /api/admin/swaps
// Supports status, page and limit query parameters.
func (s *Server) AdminListSwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	swaps, total, err := s.adminService.ListSwaps(c.UserContext(),
		models.SwapStatus(c.Query("status")), p.Page, p.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(paginated(swaps, p, total))
}

// AdminDeleteSwap handles DELETE /api/admin/swaps/:id
func (s *Server) AdminDeleteSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteSwap(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Swap request deleted",
	})
}

// AdminDismissReport handles POST /api/admin/swaps/:id/dismiss-report
func (s *Server) AdminDismissReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.adminService.DismissReport(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"swap_request": swap,
	})
}

// AdminCreateAnnouncement handles POST /api/admin/announcements
func (s *Server) AdminCreateAnnouncement(c *fiber.Ctx) error {
	var req service.AnnouncementInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	announcement, err := s.adminService.CreateAnnouncement(c.UserContext(), s.currentUser(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"announcement": announcement,
	})
}

// AdminListAnnouncements handles GET /api/admin/announcements
// Returns every announcement, including deactivated ones.
func (s *Server) AdminListAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.adminService.ListAnnouncements(c.UserContext(), false)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"announcements": announcements,
	})
}

// AdminSetAnnouncementActive handles PATCH /api/admin/announcements/:id/active
func (s *Server) AdminSetAnnouncementActive(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return models.RespondWithError(c,
			models.NewValidationError("is_active is required"))
	}

	announcement, err := s.adminService.SetAnnouncementActive(c.UserContext(), id, *req.IsActive)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"announcement": announcement,
	})
}

// AdminDeleteAnnouncement handles DELETE /api/admin/announcements/:id
func (s *Server) AdminDeleteAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteAnnouncement(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Announcement deleted",
	})
}

// GetActiveAnnouncements handles GET /api/announcements
func (s *Server) GetActiveAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.adminService.ListAnnouncements(c.UserContext(), true)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"announcements": announcements,
	})
}
