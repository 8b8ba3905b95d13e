package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapBox selects which side of a user's swap requests to list.
type SwapBox string

const (
	SwapBoxAll      SwapBox = "all"
	SwapBoxSent     SwapBox = "sent"
	SwapBoxReceived SwapBox = "received"
)

// SwapFilter narrows a swap request listing.
type SwapFilter struct {
	Box    SwapBox
	Status models.SwapStatus
	Page   int
	Limit  int
}

// SwapRepository defines persistence operations for swap requests.
// All lifecycle transitions are compare-and-set updates conditioned on the
// current status, so concurrent transitions on the same row lose cleanly
// instead of double-applying.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	GetPendingBetween(ctx context.Context, userA, userB uint) (*models.SwapRequest, error)
	ListForUser(ctx context.Context, userID uint, filter SwapFilter) ([]models.SwapRequest, int64, error)
	ListAll(ctx context.Context, status models.SwapStatus, page, limit int) ([]models.SwapRequest, int64, error)
	Accept(ctx context.Context, id uint) error
	Reject(ctx context.Context, id uint) error
	Cancel(ctx context.Context, id uint, cancelledBy uint, reason string) error
	Complete(ctx context.Context, id uint, requesterID, recipientID uint) error
	Report(ctx context.Context, id uint, reportedBy uint, reason models.ReportReason, details string) error
	ClearReport(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error)
	CountReported(ctx context.Context) (int64, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		if isUniqueConstraintError(err) {
			// The pending_pair unique index is the arbiter under concurrency
			return models.NewDuplicatePendingRequestError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Recipient").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

// GetPendingBetween finds a pending request between two users in either
// direction. Returns nil when none exists.
func (r *swapRepository) GetPendingBetween(ctx context.Context, userA, userB uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.SwapStatusPending).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		First(&swap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) ListForUser(ctx context.Context, userID uint, filter SwapFilter) ([]models.SwapRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SwapRequest{})

	switch filter.Box {
	case SwapBoxSent:
		query = query.Where("requester_id = ?", userID)
	case SwapBoxReceived:
		query = query.Where("recipient_id = ?", userID)
	default:
		query = query.Where("requester_id = ? OR recipient_id = ?", userID, userID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var swaps []models.SwapRequest
	if err := query.
		Preload("Requester").
		Preload("Recipient").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&swaps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return swaps, total, nil
}

func (r *swapRepository) ListAll(ctx context.Context, status models.SwapStatus, page, limit int) ([]models.SwapRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SwapRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var swaps []models.SwapRequest
	if err := query.
		Preload("Requester").
		Preload("Recipient").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&swaps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return swaps, total, nil
}

// transition applies updates to the row iff it is currently in one of the
// allowed statuses. A zero RowsAffected with an existing row means the status
// changed underneath us.
func (r *swapRepository) transition(ctx context.Context, db *gorm.DB, id uint, from []models.SwapStatus, updates map[string]interface{}) error {
	result := db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.WithContext(ctx).
			Model(&models.SwapRequest{}).
			Where("id = ?", id).
			Count(&exists).Error; err != nil {
			return models.NewInternalError(err)
		}
		if exists == 0 {
			return models.NewNotFoundError("Swap request", id)
		}
		return models.NewInvalidStateTransitionError("Swap request is not in a state that allows this action")
	}
	return nil
}

func (r *swapRepository) Accept(ctx context.Context, id uint) error {
	now := time.Now()
	return r.transition(ctx, r.db, id, []models.SwapStatus{models.SwapStatusPending}, map[string]interface{}{
		"status":       models.SwapStatusAccepted,
		"accepted_at":  &now,
		"pending_pair": nil,
	})
}

func (r *swapRepository) Reject(ctx context.Context, id uint) error {
	return r.transition(ctx, r.db, id, []models.SwapStatus{models.SwapStatusPending}, map[string]interface{}{
		"status":       models.SwapStatusRejected,
		"pending_pair": nil,
	})
}

func (r *swapRepository) Cancel(ctx context.Context, id uint, cancelledBy uint, reason string) error {
	now := time.Now()
	return r.transition(ctx, r.db, id,
		[]models.SwapStatus{models.SwapStatusPending, models.SwapStatusAccepted},
		map[string]interface{}{
			"status":              models.SwapStatusCancelled,
			"cancelled_at":        &now,
			"cancelled_by":        cancelledBy,
			"cancellation_reason": reason,
			"pending_pair":        nil,
		})
}

// Complete moves an accepted swap to completed and credits both parties'
// swap counters in the same transaction.
func (r *swapRepository) Complete(ctx context.Context, id uint, requesterID, recipientID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.transition(ctx, tx, id, []models.SwapStatus{models.SwapStatusAccepted}, map[string]interface{}{
			"status":       models.SwapStatusCompleted,
			"completed_at": &now,
		}); err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("id IN ?", []uint{requesterID, recipientID}).
			Update("total_swaps", gorm.Expr("total_swaps + 1")).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *swapRepository) Report(ctx context.Context, id uint, reportedBy uint, reason models.ReportReason, details string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND is_reported = ?", id, false).
		Updates(map[string]interface{}{
			"is_reported":    true,
			"report_reason":  reason,
			"report_details": details,
			"reported_by":    reportedBy,
			"reported_at":    &now,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).
			Model(&models.SwapRequest{}).
			Where("id = ?", id).
			Count(&exists).Error; err != nil {
			return models.NewInternalError(err)
		}
		if exists == 0 {
			return models.NewNotFoundError("Swap request", id)
		}
		return models.NewValidationError("Swap request has already been reported")
	}
	return nil
}

func (r *swapRepository) ClearReport(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_reported":    false,
			"report_reason":  "",
			"report_details": "",
			"reported_by":    nil,
			"reported_at":    nil,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Swap request", id)
	}
	return nil
}

func (r *swapRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SwapRequest{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Swap request", id)
	}
	return nil
}

func (r *swapRepository) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *swapRepository) CountReported(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("is_reported = ?", true).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
