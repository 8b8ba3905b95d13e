package service

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/models"
)

func assertAppErrorCode(t *testing.T, err error, code models.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func activeUser(id uint) *models.User {
	return &models.User{
		ID:         id,
		Status:     models.StatusActive,
		Visibility: models.VisibilityPublic,
	}
}

func validCreateInput(recipientID uint) CreateSwapInput {
	return CreateSwapInput{
		RecipientID:    recipientID,
		RequestedSkill: "Guitar",
		OfferedSkill:   "Spanish",
		Message:        "Would love to trade weekly lessons",
	}
}

func TestSwapServiceCreateSelfRequest(t *testing.T) {
	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), config.PendingScopeSymmetric)

	_, err := svc.Create(context.Background(), activeUser(1), validCreateInput(1))
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestSwapServiceCreateMessageTooShort(t *testing.T) {
	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), config.PendingScopeSymmetric)

	input := validCreateInput(2)
	input.Message = "hi"
	_, err := svc.Create(context.Background(), activeUser(1), input)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestSwapServiceCreateRecipientNotAccepting(t *testing.T) {
	tests := []struct {
		name      string
		recipient *models.User
	}{
		{"banned recipient", &models.User{ID: 2, Status: models.StatusBanned, Visibility: models.VisibilityPublic}},
		{"private recipient", &models.User{ID: 2, Status: models.StatusActive, Visibility: models.VisibilityPrivate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := noopUserRepo()
			userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
				return tt.recipient, nil
			}
			svc := NewSwapService(noopSwapRepo(), userRepo, config.PendingScopeSymmetric)

			_, err := svc.Create(context.Background(), activeUser(1), validCreateInput(2))
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestSwapServiceCreateDuplicatePending(t *testing.T) {
	t.Run("symmetric scope blocks reverse direction", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return activeUser(id), nil
		}
		swapRepo := noopSwapRepo()
		swapRepo.getPendingBetweenFn = func(context.Context, uint, uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{ID: 7, RequesterID: 2, RecipientID: 1, Status: models.SwapStatusPending}, nil
		}
		svc := NewSwapService(swapRepo, userRepo, config.PendingScopeSymmetric)

		_, err := svc.Create(context.Background(), activeUser(1), validCreateInput(2))
		assertAppErrorCode(t, err, models.CodeDuplicatePendingRequest)
	})

	t.Run("directional scope allows reverse direction", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return activeUser(id), nil
		}
		swapRepo := noopSwapRepo()
		swapRepo.getPendingBetweenFn = func(context.Context, uint, uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{ID: 7, RequesterID: 2, RecipientID: 1, Status: models.SwapStatusPending}, nil
		}
		var created *models.SwapRequest
		swapRepo.createFn = func(_ context.Context, swap *models.SwapRequest) error {
			swap.ID = 8
			created = swap
			return nil
		}
		swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
			return created, nil
		}
		svc := NewSwapService(swapRepo, userRepo, config.PendingScopeDirectional)

		swap, err := svc.Create(context.Background(), activeUser(1), validCreateInput(2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if swap.PendingPair == nil || *swap.PendingPair != models.DirectionalPairKey(1, 2) {
			t.Fatalf("expected directional pair key, got %v", swap.PendingPair)
		}
	})
}

func TestSwapServiceCreateSetsSymmetricPairKey(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return activeUser(id), nil
	}
	swapRepo := noopSwapRepo()
	var created *models.SwapRequest
	swapRepo.createFn = func(_ context.Context, swap *models.SwapRequest) error {
		swap.ID = 1
		created = swap
		return nil
	}
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return created, nil
	}
	svc := NewSwapService(swapRepo, userRepo, config.PendingScopeSymmetric)

	_, err := svc.Create(context.Background(), activeUser(5), validCreateInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PendingPair == nil || *created.PendingPair != models.SymmetricPairKey(2, 5) {
		t.Fatalf("expected symmetric pair key 2:5, got %v", created.PendingPair)
	}
	if created.Status != models.SwapStatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
}

func TestSwapServiceAcceptRecipientOnly(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 1, RequesterID: 1, RecipientID: 2, Status: models.SwapStatusPending}, nil
	}
	svc := NewSwapService(swapRepo, noopUserRepo(), config.PendingScopeSymmetric)

	// Requester cannot accept their own request
	_, err := svc.Accept(context.Background(), activeUser(1), 1)
	assertAppErrorCode(t, err, models.CodeForbidden)

	// An unrelated user cannot accept either
	_, err = svc.Accept(context.Background(), activeUser(3), 1)
	assertAppErrorCode(t, err, models.CodeForbidden)

	// The recipient can
	if _, err := svc.Accept(context.Background(), activeUser(2), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSwapServiceCancelPartyOnly(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 1, RequesterID: 1, RecipientID: 2, Status: models.SwapStatusAccepted}, nil
	}
	var gotReason string
	var gotBy uint
	swapRepo.cancelFn = func(_ context.Context, _ uint, by uint, reason string) error {
		gotBy = by
		gotReason = reason
		return nil
	}
	svc := NewSwapService(swapRepo, noopUserRepo(), config.PendingScopeSymmetric)

	_, err := svc.Cancel(context.Background(), activeUser(3), 1, "")
	assertAppErrorCode(t, err, models.CodeForbidden)

	if _, err := svc.Cancel(context.Background(), activeUser(2), 1, "schedule conflict"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBy != 2 || gotReason != "schedule conflict" {
		t.Fatalf("cancel recorded by=%d reason=%q", gotBy, gotReason)
	}

	// Too-short reason is rejected before touching the repo
	_, err = svc.Cancel(context.Background(), activeUser(1), 1, "abc")
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestSwapServiceCompletePassesBothParties(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 1, RequesterID: 1, RecipientID: 2, Status: models.SwapStatusAccepted}, nil
	}
	var gotRequester, gotRecipient uint
	swapRepo.completeFn = func(_ context.Context, _ uint, requesterID, recipientID uint) error {
		gotRequester = requesterID
		gotRecipient = recipientID
		return nil
	}
	svc := NewSwapService(swapRepo, noopUserRepo(), config.PendingScopeSymmetric)

	if _, err := svc.Complete(context.Background(), activeUser(1), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRequester != 1 || gotRecipient != 2 {
		t.Fatalf("complete called with %d/%d", gotRequester, gotRecipient)
	}

	_, err := svc.Complete(context.Background(), activeUser(9), 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestSwapServiceDelete(t *testing.T) {
	newRepo := func(status models.SwapStatus) *swapRepoStub {
		repo := noopSwapRepo()
		repo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{ID: 1, RequesterID: 1, RecipientID: 2, Status: status}, nil
		}
		return repo
	}

	t.Run("requester deletes pending", func(t *testing.T) {
		svc := NewSwapService(newRepo(models.SwapStatusPending), noopUserRepo(), "")
		if err := svc.Delete(context.Background(), activeUser(1), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("requester cannot delete accepted", func(t *testing.T) {
		svc := NewSwapService(newRepo(models.SwapStatusAccepted), noopUserRepo(), "")
		err := svc.Delete(context.Background(), activeUser(1), 1)
		assertAppErrorCode(t, err, models.CodeInvalidStateTransition)
	})

	t.Run("recipient cannot delete", func(t *testing.T) {
		svc := NewSwapService(newRepo(models.SwapStatusPending), noopUserRepo(), "")
		err := svc.Delete(context.Background(), activeUser(2), 1)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("admin deletes anything", func(t *testing.T) {
		svc := NewSwapService(newRepo(models.SwapStatusCompleted), noopUserRepo(), "")
		admin := &models.User{ID: 9, Role: models.RoleAdmin, Status: models.StatusActive}
		if err := svc.Delete(context.Background(), admin, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSwapServiceReport(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: 1, RequesterID: 1, RecipientID: 2, Status: models.SwapStatusAccepted}, nil
	}
	svc := NewSwapService(swapRepo, noopUserRepo(), "")

	_, err := svc.Report(context.Background(), activeUser(1), 1, ReportInput{Reason: "not-a-reason"})
	assertAppErrorCode(t, err, models.CodeValidation)

	// Observers may report swaps they are not part of
	if _, err := svc.Report(context.Background(), activeUser(3), 1, ReportInput{Reason: models.ReportReasonSpam, Details: "mass-mailed offer"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Report(context.Background(), activeUser(2), 1, ReportInput{Reason: models.ReportReasonNoShow, Details: "never showed"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
