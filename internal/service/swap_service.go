package service

import (
	"context"

	"skillswap/internal/config"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SwapService provides the swap request lifecycle business logic.
type SwapService struct {
	swapRepo     repository.SwapRepository
	userRepo     repository.UserRepository
	pendingScope string
}

// NewSwapService returns a new SwapService. pendingScope selects how the
// one-pending-request-per-pair rule is keyed (symmetric or directional).
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, pendingScope string) *SwapService {
	if pendingScope == "" {
		pendingScope = config.PendingScopeSymmetric
	}
	return &SwapService{
		swapRepo:     swapRepo,
		userRepo:     userRepo,
		pendingScope: pendingScope,
	}
}

func (s *SwapService) pairKey(requesterID, recipientID uint) string {
	if s.pendingScope == config.PendingScopeDirectional {
		return models.DirectionalPairKey(requesterID, recipientID)
	}
	return models.SymmetricPairKey(requesterID, recipientID)
}

// CreateInput carries the fields accepted when opening a swap request.
type CreateSwapInput struct {
	RecipientID    uint   `json:"recipient_id"`
	RequestedSkill string `json:"requested_skill"`
	OfferedSkill   string `json:"offered_skill"`
	Message        string `json:"message"`
}

// Create opens a new pending swap request from requester to the recipient.
func (s *SwapService) Create(ctx context.Context, requester *models.User, input CreateSwapInput) (*models.SwapRequest, error) {
	if input.RecipientID == requester.ID {
		return nil, models.NewValidationError("You cannot send a swap request to yourself")
	}
	if err := validation.Skill(input.RequestedSkill); err != nil {
		return nil, err
	}
	if err := validation.Skill(input.OfferedSkill); err != nil {
		return nil, err
	}
	if err := validation.SwapMessage(input.Message); err != nil {
		return nil, err
	}

	recipient, err := s.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}
	if !recipient.IsActive() || recipient.Visibility == models.VisibilityPrivate {
		return nil, models.NewValidationError("This user is not accepting swap requests")
	}

	// Friendly pre-check; the unique pending_pair index is the real arbiter
	// under concurrent creates.
	existing, err := s.swapRepo.GetPendingBetween(ctx, requester.ID, input.RecipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if s.pendingScope == config.PendingScopeSymmetric || existing.RequesterID == requester.ID {
			return nil, models.NewDuplicatePendingRequestError()
		}
	}

	pair := s.pairKey(requester.ID, input.RecipientID)
	swap := &models.SwapRequest{
		RequesterID:    requester.ID,
		RecipientID:    input.RecipientID,
		RequestedSkill: input.RequestedSkill,
		OfferedSkill:   input.OfferedSkill,
		Message:        input.Message,
		Status:         models.SwapStatusPending,
		PendingPair:    &pair,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, swap.ID)
}

// Get returns a single swap request. Only the two parties and admins may view it.
func (s *SwapService) Get(ctx context.Context, actor *models.User, id uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(actor.ID) && !actor.IsAdmin() {
		return nil, models.NewForbiddenError("You do not have access to this swap request")
	}
	return swap, nil
}

// List returns the actor's swap requests filtered by box and status.
func (s *SwapService) List(ctx context.Context, actorID uint, filter repository.SwapFilter) ([]models.SwapRequest, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	switch filter.Box {
	case repository.SwapBoxSent, repository.SwapBoxReceived, repository.SwapBoxAll:
	default:
		filter.Box = repository.SwapBoxAll
	}
	if filter.Status != "" {
		switch filter.Status {
		case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected,
			models.SwapStatusCancelled, models.SwapStatusCompleted:
		default:
			return nil, 0, models.NewValidationError("Invalid status filter")
		}
	}
	return s.swapRepo.ListForUser(ctx, actorID, filter)
}

// Accept moves a pending request to accepted. Recipient only.
func (s *SwapService) Accept(ctx context.Context, actor *models.User, id uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.RecipientID != actor.ID {
		return nil, models.NewForbiddenError("Only the recipient can accept a swap request")
	}
	if err := s.swapRepo.Accept(ctx, id); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, id)
}

// Reject moves a pending request to rejected. Recipient only.
func (s *SwapService) Reject(ctx context.Context, actor *models.User, id uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.RecipientID != actor.ID {
		return nil, models.NewForbiddenError("Only the recipient can reject a swap request")
	}
	if err := s.swapRepo.Reject(ctx, id); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, id)
}

// Cancel moves a pending or accepted request to cancelled.
// Either party may cancel, with an optional reason.
func (s *SwapService) Cancel(ctx context.Context, actor *models.User, id uint, reason string) (*models.SwapRequest, error) {
	if err := validation.CancellationReason(reason); err != nil {
		return nil, err
	}
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(actor.ID) {
		return nil, models.NewForbiddenError("Only a swap participant can cancel it")
	}
	if err := s.swapRepo.Cancel(ctx, id, actor.ID, reason); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, id)
}

// Complete moves an accepted request to completed and credits both parties.
// Either party may mark completion.
func (s *SwapService) Complete(ctx context.Context, actor *models.User, id uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !swap.IsParty(actor.ID) {
		return nil, models.NewForbiddenError("Only a swap participant can complete it")
	}
	if err := s.swapRepo.Complete(ctx, id, swap.RequesterID, swap.RecipientID); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, id)
}

// Delete removes a swap request. The requester may delete their own request
// while it is still pending; admins may delete any request.
func (s *SwapService) Delete(ctx context.Context, actor *models.User, id uint) error {
	swap, err := s.swapRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return s.swapRepo.Delete(ctx, id)
	}
	if swap.RequesterID != actor.ID {
		return models.NewForbiddenError("You can only delete your own swap requests")
	}
	if swap.Status != models.SwapStatusPending {
		return models.NewInvalidStateTransitionError("Only pending swap requests can be deleted")
	}
	return s.swapRepo.Delete(ctx, id)
}

// ReportInput carries the fields accepted when reporting a swap request.
type ReportInput struct {
	Reason  models.ReportReason `json:"reason"`
	Details string              `json:"details"`
}

// Report flags a swap request for moderation. Any signed-in user may file the
// report, participant or observer, and only the first report sticks.
func (s *SwapService) Report(ctx context.Context, actor *models.User, id uint, input ReportInput) (*models.SwapRequest, error) {
	if err := validation.Report(input.Reason, input.Details); err != nil {
		return nil, err
	}
	if _, err := s.swapRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.swapRepo.Report(ctx, id, actor.ID, input.Reason, input.Details); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, id)
}
