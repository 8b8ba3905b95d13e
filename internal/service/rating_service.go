package service

import (
	"context"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// RatingService provides rating submission, editing and aggregate logic.
type RatingService struct {
	ratingRepo repository.RatingRepository
	swapRepo   repository.SwapRepository
	userRepo   repository.UserRepository
}

// NewRatingService returns a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, swapRepo repository.SwapRepository, userRepo repository.UserRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		swapRepo:   swapRepo,
		userRepo:   userRepo,
	}
}

// SubmitRatingInput carries the fields accepted when rating a completed swap.
type SubmitRatingInput struct {
	SwapID  uint   `json:"swap_id"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Submit records a rating for the author's counterpart on a completed swap.
// The rated user's aggregate is rebuilt in the same transaction as the insert.
func (s *RatingService) Submit(ctx context.Context, author *models.User, input SubmitRatingInput) (*models.Rating, error) {
	if err := validation.Score(input.Score); err != nil {
		return nil, err
	}
	if err := validation.RatingComment(input.Comment); err != nil {
		return nil, err
	}

	swap, err := s.swapRepo.GetByID(ctx, input.SwapID)
	if err != nil {
		return nil, err
	}
	toUserID, isParty := swap.OtherParty(author.ID)
	if !isParty {
		return nil, models.NewForbiddenError("You can only rate swaps you participated in")
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, models.NewValidationError("Only completed swaps can be rated")
	}

	existing, err := s.ratingRepo.GetBySwapAndAuthor(ctx, swap.ID, author.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("You have already rated this swap")
	}

	rating := &models.Rating{
		FromUserID: author.ID,
		ToUserID:   toUserID,
		SwapID:     swap.ID,
		Score:      input.Score,
		Comment:    input.Comment,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// EditRatingInput carries partial rating updates. Nil fields are untouched.
type EditRatingInput struct {
	Score   *int    `json:"score"`
	Comment *string `json:"comment"`
}

// Edit updates a rating. Only the author may edit, and only within the edit
// window after creation. The aggregate is rebuilt alongside the save.
func (s *RatingService) Edit(ctx context.Context, actor *models.User, ratingID uint, input EditRatingInput) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if rating.FromUserID != actor.ID {
		return nil, models.NewForbiddenError("You can only edit your own ratings")
	}
	if time.Since(rating.CreatedAt) > models.RatingEditWindow {
		return nil, models.NewValidationError("Ratings can only be edited within 24 hours of creation")
	}

	if input.Score != nil {
		if err := validation.Score(*input.Score); err != nil {
			return nil, err
		}
		rating.Score = *input.Score
	}
	if input.Comment != nil {
		if err := validation.RatingComment(*input.Comment); err != nil {
			return nil, err
		}
		rating.Comment = *input.Comment
	}

	if err := s.ratingRepo.Save(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// Delete removes a rating, rebuilding the rated user's aggregate with it.
// The author and admins may delete.
func (s *RatingService) Delete(ctx context.Context, actor *models.User, ratingID uint) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.FromUserID != actor.ID && !actor.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own ratings")
	}
	return s.ratingRepo.Delete(ctx, ratingID)
}

// ListForUser returns ratings addressed to the given user, newest first.
func (s *RatingService) ListForUser(ctx context.Context, toUserID uint, page, limit int) ([]models.Rating, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
		return nil, 0, err
	}
	return s.ratingRepo.ListForUser(ctx, toUserID, page, limit)
}

// SummaryFor returns the aggregate rating view for a user.
func (s *RatingService) SummaryFor(ctx context.Context, toUserID uint) (models.RatingSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
		return models.EmptyRatingSummary(), err
	}
	return s.ratingRepo.SummaryFor(ctx, toUserID)
}
