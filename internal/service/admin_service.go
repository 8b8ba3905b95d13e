package service

import (
	"context"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// AdminService provides moderation and platform oversight logic.
// Authorization to reach these operations is enforced at the route layer;
// the service still guards actions that depend on who the actor is.
type AdminService struct {
	userRepo         repository.UserRepository
	swapRepo         repository.SwapRepository
	ratingRepo       repository.RatingRepository
	announcementRepo repository.AnnouncementRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	swapRepo repository.SwapRepository,
	ratingRepo repository.RatingRepository,
	announcementRepo repository.AnnouncementRepository,
) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		swapRepo:         swapRepo,
		ratingRepo:       ratingRepo,
		announcementRepo: announcementRepo,
	}
}

// DashboardStats is the admin overview of platform activity.
type DashboardStats struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	BannedUsers    int64 `json:"banned_users"`
	NewUsersWeek   int64 `json:"new_users_this_week"`
	PendingSwaps   int64 `json:"pending_swaps"`
	AcceptedSwaps  int64 `json:"accepted_swaps"`
	CompletedSwaps int64 `json:"completed_swaps"`
	ReportedSwaps  int64 `json:"reported_swaps"`
	TotalRatings   int64 `json:"total_ratings"`
}

// Dashboard aggregates the counters shown on the admin dashboard.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	active, err := s.userRepo.CountByStatus(ctx, models.StatusActive)
	if err != nil {
		return nil, err
	}
	banned, err := s.userRepo.CountByStatus(ctx, models.StatusBanned)
	if err != nil {
		return nil, err
	}
	suspended, err := s.userRepo.CountByStatus(ctx, models.StatusSuspended)
	if err != nil {
		return nil, err
	}
	stats.ActiveUsers = active
	stats.BannedUsers = banned
	stats.TotalUsers = active + banned + suspended

	newUsers, err := s.userRepo.CountSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	stats.NewUsersWeek = newUsers

	for status, dest := range map[models.SwapStatus]*int64{
		models.SwapStatusPending:   &stats.PendingSwaps,
		models.SwapStatusAccepted:  &stats.AcceptedSwaps,
		models.SwapStatusCompleted: &stats.CompletedSwaps,
	} {
		count, err := s.swapRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		*dest = count
	}

	reported, err := s.swapRepo.CountReported(ctx)
	if err != nil {
		return nil, err
	}
	stats.ReportedSwaps = reported

	ratings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRatings = ratings

	return stats, nil
}

// ListUsers returns the admin user listing.
func (s *AdminService) ListUsers(ctx context.Context, filter repository.AdminUserFilter) ([]models.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.userRepo.AdminList(ctx, filter)
}

// SetUserStatus changes a user's account standing.
// Admins cannot change their own status, so the last admin cannot lock
// themselves out.
func (s *AdminService) SetUserStatus(ctx context.Context, actor *models.User, targetID uint, status models.UserStatus) (*models.User, error) {
	switch status {
	case models.StatusActive, models.StatusBanned, models.StatusSuspended:
	default:
		return nil, models.NewValidationError("Status must be active, banned or suspended")
	}
	if actor.ID == targetID {
		return nil, models.NewForbiddenError("You cannot change your own account status")
	}
	if err := s.userRepo.SetStatus(ctx, targetID, status); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, targetID)
}

// ListSwaps returns the admin swap listing, optionally filtered by status.
func (s *AdminService) ListSwaps(ctx context.Context, status models.SwapStatus, page, limit int) ([]models.SwapRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if status != "" {
		switch status {
		case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected,
			models.SwapStatusCancelled, models.SwapStatusCompleted:
		default:
			return nil, 0, models.NewValidationError("Invalid status filter")
		}
	}
	return s.swapRepo.ListAll(ctx, status, page, limit)
}

// DeleteSwap removes any swap request outright.
func (s *AdminService) DeleteSwap(ctx context.Context, id uint) error {
	if _, err := s.swapRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.swapRepo.Delete(ctx, id)
}

// DismissReport clears the report flags from a swap request.
func (s *AdminService) DismissReport(ctx context.Context, id uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !swap.IsReported {
		return nil, models.NewValidationError("Swap request is not reported")
	}
	if err := s.swapRepo.ClearReport(ctx, id); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, id)
}

// AnnouncementInput carries the fields accepted when publishing an announcement.
type AnnouncementInput struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    models.AnnouncementType `json:"type"`
}

// CreateAnnouncement publishes a platform-wide announcement.
func (s *AdminService) CreateAnnouncement(ctx context.Context, actor *models.User, input AnnouncementInput) (*models.Announcement, error) {
	if input.Type == "" {
		input.Type = models.AnnouncementInfo
	}
	if err := validation.Announcement(input.Title, input.Message, input.Type); err != nil {
		return nil, err
	}
	announcement := &models.Announcement{
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		CreatedBy: actor.ID,
		IsActive:  true,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// ListAnnouncements returns announcements; activeOnly hides deactivated ones.
func (s *AdminService) ListAnnouncements(ctx context.Context, activeOnly bool) ([]models.Announcement, error) {
	if activeOnly {
		return s.announcementRepo.ListActive(ctx)
	}
	return s.announcementRepo.ListAll(ctx)
}

// SetAnnouncementActive toggles an announcement's visibility.
func (s *AdminService) SetAnnouncementActive(ctx context.Context, id uint, active bool) (*models.Announcement, error) {
	if err := s.announcementRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.announcementRepo.GetByID(ctx, id)
}

// DeleteAnnouncement removes an announcement.
func (s *AdminService) DeleteAnnouncement(ctx context.Context, id uint) error {
	return s.announcementRepo.Delete(ctx, id)
}
