package repository

import (
	"context"
	"errors"
	"math"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for ratings and the
// denormalized per-user aggregates derived from them. Create, Save and Delete
// rebuild the rated user's aggregate in the same transaction as the mutation;
// RecomputeUserAggregate stands alone for batch rebuilds.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id uint) (*models.Rating, error)
	GetBySwapAndAuthor(ctx context.Context, swapID, fromUserID uint) (*models.Rating, error)
	Save(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id uint) error
	ListForUser(ctx context.Context, toUserID uint, page, limit int) ([]models.Rating, int64, error)
	SummaryFor(ctx context.Context, toUserID uint) (models.RatingSummary, error)
	RecomputeUserAggregate(ctx context.Context, toUserID uint) error
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}
		return recomputeAggregate(tx, rating.ToUserID)
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("You have already rated this swap")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, rating.ToUserID)
	cache.InvalidateBrowse(ctx)
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

// GetBySwapAndAuthor returns nil when the author has not rated the swap yet.
func (r *ratingRepository) GetBySwapAndAuthor(ctx context.Context, swapID, fromUserID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("swap_id = ? AND from_user_id = ?", swapID, fromUserID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) Save(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rating).Error; err != nil {
			return err
		}
		return recomputeAggregate(tx, rating.ToUserID)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, rating.ToUserID)
	cache.InvalidateBrowse(ctx)
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id uint) error {
	var toUserID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rating models.Rating
		if err := tx.First(&rating, id).Error; err != nil {
			return err
		}
		toUserID = rating.ToUserID
		if err := tx.Delete(&models.Rating{}, id).Error; err != nil {
			return err
		}
		return recomputeAggregate(tx, toUserID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Rating", id)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, toUserID)
	cache.InvalidateBrowse(ctx)
	return nil
}

func (r *ratingRepository) ListForUser(ctx context.Context, toUserID uint, page, limit int) ([]models.Rating, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("to_user_id = ?", toUserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var ratings []models.Rating
	if err := query.
		Preload("FromUser").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ratings, total, nil
}

// SummaryFor builds the aggregate view from a single grouped query.
// Users with no ratings get a zeroed summary, never a division by zero.
func (r *ratingRepository) SummaryFor(ctx context.Context, toUserID uint) (models.RatingSummary, error) {
	summary := models.EmptyRatingSummary()

	err := cache.Aside(ctx, cache.RatingSummaryKey(toUserID), &summary, cache.RatingSummaryTTL, func() error {
		var rows []struct {
			Score int
			Count int
		}
		if err := r.db.WithContext(ctx).
			Model(&models.Rating{}).
			Select("score, COUNT(*) as count").
			Where("to_user_id = ?", toUserID).
			Group("score").
			Scan(&rows).Error; err != nil {
			return models.NewInternalError(err)
		}

		sum := 0
		for _, row := range rows {
			summary.Distribution[row.Score] = row.Count
			summary.TotalRatings += row.Count
			sum += row.Score * row.Count
		}
		if summary.TotalRatings > 0 {
			avg := float64(sum) / float64(summary.TotalRatings)
			summary.AverageRating = math.Round(avg*10) / 10
		}
		return nil
	})
	if err != nil {
		return models.EmptyRatingSummary(), err
	}
	return summary, nil
}

// recomputeAggregate rebuilds the denormalized rating fields on the rated
// user from the ratings table, inside the caller's transaction. The average
// is rounded to one decimal.
func recomputeAggregate(tx *gorm.DB, toUserID uint) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) as avg, COUNT(*) as count").
		Where("to_user_id = ?", toUserID).
		Scan(&agg).Error; err != nil {
		return err
	}

	rounded := math.Round(agg.Avg*10) / 10
	return tx.Model(&models.User{}).
		Where("id = ?", toUserID).
		Updates(map[string]interface{}{
			"rating":        rounded,
			"total_ratings": agg.Count,
		}).Error
}

// RecomputeUserAggregate rebuilds a user's aggregate outside any mutation,
// for batch use after bulk inserts.
func (r *ratingRepository) RecomputeUserAggregate(ctx context.Context, toUserID uint) error {
	if err := recomputeAggregate(r.db.WithContext(ctx), toUserID); err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, toUserID)
	cache.InvalidateBrowse(ctx)
	return nil
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
