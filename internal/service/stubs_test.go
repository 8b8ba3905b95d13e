package service

import (
	"context"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	updateFn          func(context.Context, *models.User) error
	setStatusFn       func(context.Context, uint, models.UserStatus) error
	touchLastActiveFn func(context.Context, uint) error
	listFn            func(context.Context, repository.UserFilter) ([]models.User, int64, error)
	adminListFn       func(context.Context, repository.AdminUserFilter) ([]models.User, int64, error)
	countByStatusFn   func(context.Context, models.UserStatus) (int64, error)
	countSinceFn      func(context.Context, time.Time) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SetStatus(ctx context.Context, id uint, status models.UserStatus) error {
	return s.setStatusFn(ctx, id, status)
}
func (s *userRepoStub) TouchLastActive(ctx context.Context, id uint) error {
	return s.touchLastActiveFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, filter repository.UserFilter) ([]models.User, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *userRepoStub) AdminList(ctx context.Context, filter repository.AdminUserFilter) ([]models.User, int64, error) {
	return s.adminListFn(ctx, filter)
}
func (s *userRepoStub) CountByStatus(ctx context.Context, status models.UserStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}
func (s *userRepoStub) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countSinceFn(ctx, since)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:         func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:      func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:          func(context.Context, *models.User) error { return nil },
		updateFn:          func(context.Context, *models.User) error { return nil },
		setStatusFn:       func(context.Context, uint, models.UserStatus) error { return nil },
		touchLastActiveFn: func(context.Context, uint) error { return nil },
		listFn: func(context.Context, repository.UserFilter) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		adminListFn: func(context.Context, repository.AdminUserFilter) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		countByStatusFn: func(context.Context, models.UserStatus) (int64, error) { return 0, nil },
		countSinceFn:    func(context.Context, time.Time) (int64, error) { return 0, nil },
	}
}

type swapRepoStub struct {
	createFn            func(context.Context, *models.SwapRequest) error
	getByIDFn           func(context.Context, uint) (*models.SwapRequest, error)
	getPendingBetweenFn func(context.Context, uint, uint) (*models.SwapRequest, error)
	listForUserFn       func(context.Context, uint, repository.SwapFilter) ([]models.SwapRequest, int64, error)
	listAllFn           func(context.Context, models.SwapStatus, int, int) ([]models.SwapRequest, int64, error)
	acceptFn            func(context.Context, uint) error
	rejectFn            func(context.Context, uint) error
	cancelFn            func(context.Context, uint, uint, string) error
	completeFn          func(context.Context, uint, uint, uint) error
	reportFn            func(context.Context, uint, uint, models.ReportReason, string) error
	clearReportFn       func(context.Context, uint) error
	deleteFn            func(context.Context, uint) error
	countByStatusFn     func(context.Context, models.SwapStatus) (int64, error)
	countReportedFn     func(context.Context) (int64, error)
}

func (s *swapRepoStub) Create(ctx context.Context, swap *models.SwapRequest) error {
	return s.createFn(ctx, swap)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) GetPendingBetween(ctx context.Context, userA, userB uint) (*models.SwapRequest, error) {
	return s.getPendingBetweenFn(ctx, userA, userB)
}
func (s *swapRepoStub) ListForUser(ctx context.Context, userID uint, filter repository.SwapFilter) ([]models.SwapRequest, int64, error) {
	return s.listForUserFn(ctx, userID, filter)
}
func (s *swapRepoStub) ListAll(ctx context.Context, status models.SwapStatus, page, limit int) ([]models.SwapRequest, int64, error) {
	return s.listAllFn(ctx, status, page, limit)
}
func (s *swapRepoStub) Accept(ctx context.Context, id uint) error {
	return s.acceptFn(ctx, id)
}
func (s *swapRepoStub) Reject(ctx context.Context, id uint) error {
	return s.rejectFn(ctx, id)
}
func (s *swapRepoStub) Cancel(ctx context.Context, id uint, cancelledBy uint, reason string) error {
	return s.cancelFn(ctx, id, cancelledBy, reason)
}
func (s *swapRepoStub) Complete(ctx context.Context, id uint, requesterID, recipientID uint) error {
	return s.completeFn(ctx, id, requesterID, recipientID)
}
func (s *swapRepoStub) Report(ctx context.Context, id uint, reportedBy uint, reason models.ReportReason, details string) error {
	return s.reportFn(ctx, id, reportedBy, reason, details)
}
func (s *swapRepoStub) ClearReport(ctx context.Context, id uint) error {
	return s.clearReportFn(ctx, id)
}
func (s *swapRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *swapRepoStub) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}
func (s *swapRepoStub) CountReported(ctx context.Context) (int64, error) {
	return s.countReportedFn(ctx)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn: func(context.Context, *models.SwapRequest) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{}, nil
		},
		getPendingBetweenFn: func(context.Context, uint, uint) (*models.SwapRequest, error) {
			return nil, nil
		},
		listForUserFn: func(context.Context, uint, repository.SwapFilter) ([]models.SwapRequest, int64, error) {
			return nil, 0, nil
		},
		listAllFn: func(context.Context, models.SwapStatus, int, int) ([]models.SwapRequest, int64, error) {
			return nil, 0, nil
		},
		acceptFn:        func(context.Context, uint) error { return nil },
		rejectFn:        func(context.Context, uint) error { return nil },
		cancelFn:        func(context.Context, uint, uint, string) error { return nil },
		completeFn:      func(context.Context, uint, uint, uint) error { return nil },
		reportFn:        func(context.Context, uint, uint, models.ReportReason, string) error { return nil },
		clearReportFn:   func(context.Context, uint) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		countByStatusFn: func(context.Context, models.SwapStatus) (int64, error) { return 0, nil },
		countReportedFn: func(context.Context) (int64, error) { return 0, nil },
	}
}

type ratingRepoStub struct {
	createFn                 func(context.Context, *models.Rating) error
	getByIDFn                func(context.Context, uint) (*models.Rating, error)
	getBySwapAndAuthorFn     func(context.Context, uint, uint) (*models.Rating, error)
	saveFn                   func(context.Context, *models.Rating) error
	deleteFn                 func(context.Context, uint) error
	listForUserFn            func(context.Context, uint, int, int) ([]models.Rating, int64, error)
	summaryForFn             func(context.Context, uint) (models.RatingSummary, error)
	recomputeUserAggregateFn func(context.Context, uint) error
	countFn                  func(context.Context) (int64, error)
}

func (s *ratingRepoStub) Create(ctx context.Context, rating *models.Rating) error {
	return s.createFn(ctx, rating)
}
func (s *ratingRepoStub) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ratingRepoStub) GetBySwapAndAuthor(ctx context.Context, swapID, fromUserID uint) (*models.Rating, error) {
	return s.getBySwapAndAuthorFn(ctx, swapID, fromUserID)
}
func (s *ratingRepoStub) Save(ctx context.Context, rating *models.Rating) error {
	return s.saveFn(ctx, rating)
}
func (s *ratingRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *ratingRepoStub) ListForUser(ctx context.Context, toUserID uint, page, limit int) ([]models.Rating, int64, error) {
	return s.listForUserFn(ctx, toUserID, page, limit)
}
func (s *ratingRepoStub) SummaryFor(ctx context.Context, toUserID uint) (models.RatingSummary, error) {
	return s.summaryForFn(ctx, toUserID)
}
func (s *ratingRepoStub) RecomputeUserAggregate(ctx context.Context, toUserID uint) error {
	return s.recomputeUserAggregateFn(ctx, toUserID)
}
func (s *ratingRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		createFn:             func(context.Context, *models.Rating) error { return nil },
		getByIDFn:            func(context.Context, uint) (*models.Rating, error) { return &models.Rating{}, nil },
		getBySwapAndAuthorFn: func(context.Context, uint, uint) (*models.Rating, error) { return nil, nil },
		saveFn:               func(context.Context, *models.Rating) error { return nil },
		deleteFn:             func(context.Context, uint) error { return nil },
		listForUserFn: func(context.Context, uint, int, int) ([]models.Rating, int64, error) {
			return nil, 0, nil
		},
		summaryForFn: func(context.Context, uint) (models.RatingSummary, error) {
			return models.EmptyRatingSummary(), nil
		},
		recomputeUserAggregateFn: func(context.Context, uint) error { return nil },
		countFn:                  func(context.Context) (int64, error) { return 0, nil },
	}
}

type announcementRepoStub struct {
	createFn     func(context.Context, *models.Announcement) error
	getByIDFn    func(context.Context, uint) (*models.Announcement, error)
	listActiveFn func(context.Context) ([]models.Announcement, error)
	listAllFn    func(context.Context) ([]models.Announcement, error)
	setActiveFn  func(context.Context, uint, bool) error
	deleteFn     func(context.Context, uint) error
}

func (s *announcementRepoStub) Create(ctx context.Context, announcement *models.Announcement) error {
	return s.createFn(ctx, announcement)
}
func (s *announcementRepoStub) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	return s.getByIDFn(ctx, id)
}
func (s *announcementRepoStub) ListActive(ctx context.Context) ([]models.Announcement, error) {
	return s.listActiveFn(ctx)
}
func (s *announcementRepoStub) ListAll(ctx context.Context) ([]models.Announcement, error) {
	return s.listAllFn(ctx)
}
func (s *announcementRepoStub) SetActive(ctx context.Context, id uint, active bool) error {
	return s.setActiveFn(ctx, id, active)
}
func (s *announcementRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopAnnouncementRepo() *announcementRepoStub {
	return &announcementRepoStub{
		createFn: func(context.Context, *models.Announcement) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Announcement, error) {
			return &models.Announcement{}, nil
		},
		listActiveFn: func(context.Context) ([]models.Announcement, error) { return nil, nil },
		listAllFn:    func(context.Context) ([]models.Announcement, error) { return nil, nil },
		setActiveFn:  func(context.Context, uint, bool) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}
