// Package service contains the business logic layer of the application.
package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides registration, authentication and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Password      string              `json:"password"`
	Bio           string              `json:"bio"`
	Location      string              `json:"location"`
	SkillsOffered []string            `json:"skills_offered"`
	SkillsWanted  []string            `json:"skills_wanted"`
	Availability  models.Availability `json:"availability"`
}

// Register creates a new active user account with a hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validation.Name(input.Name); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(input.Email)
	if err := validation.Email(email); err != nil {
		return nil, err
	}
	if err := validation.Password(input.Password); err != nil {
		return nil, err
	}
	if err := validation.Bio(input.Bio); err != nil {
		return nil, err
	}
	if err := validation.Location(input.Location); err != nil {
		return nil, err
	}
	offered, err := validation.Skills(input.SkillsOffered)
	if err != nil {
		return nil, err
	}
	wanted, err := validation.Skills(input.SkillsWanted)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateEmailError()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:          input.Name,
		Email:         email,
		Password:      string(hashed),
		Role:          models.RoleUser,
		Status:        models.StatusActive,
		Visibility:    models.VisibilityPublic,
		Bio:           input.Bio,
		Location:      input.Location,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		Availability:  input.Availability,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and account standing. Banned and
// suspended accounts are refused before the password is even checked.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if !user.IsActive() {
		return nil, models.NewAccountNotActiveError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	// Best effort, login should not fail on this
	_ = s.userRepo.TouchLastActive(ctx, user.ID)
	return user, nil
}

// GetProfile returns the target profile, honoring visibility. Private
// profiles read as missing to anonymous viewers (nil) and strangers; only the
// owner and admins see them.
func (s *UserService) GetProfile(ctx context.Context, viewer *models.User, targetID uint) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.Visibility == models.VisibilityPrivate {
		if viewer == nil || (viewer.ID != target.ID && !viewer.IsAdmin()) {
			return nil, models.NewNotFoundError("User", targetID)
		}
	}
	return target, nil
}

// UpdateProfileInput carries partial profile updates. Nil fields are untouched.
type UpdateProfileInput struct {
	Name          *string              `json:"name"`
	Bio           *string              `json:"bio"`
	Location      *string              `json:"location"`
	ProfilePhoto  *string              `json:"profile_photo"`
	SkillsOffered *[]string            `json:"skills_offered"`
	SkillsWanted  *[]string            `json:"skills_wanted"`
	Availability  *models.Availability `json:"availability"`
	Visibility    *models.Visibility   `json:"visibility"`
}

// UpdateProfile applies a partial update to the target user.
// Only the profile owner and admins may update a profile.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, targetID uint, input UpdateProfileInput) (*models.User, error) {
	if actor.ID != targetID && !actor.IsAdmin() {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validation.Name(*input.Name); err != nil {
			return nil, err
		}
		target.Name = *input.Name
	}
	if input.Bio != nil {
		if err := validation.Bio(*input.Bio); err != nil {
			return nil, err
		}
		target.Bio = *input.Bio
	}
	if input.Location != nil {
		if err := validation.Location(*input.Location); err != nil {
			return nil, err
		}
		target.Location = *input.Location
	}
	if input.ProfilePhoto != nil {
		target.ProfilePhoto = *input.ProfilePhoto
	}
	if input.SkillsOffered != nil {
		skills, err := validation.Skills(*input.SkillsOffered)
		if err != nil {
			return nil, err
		}
		target.SkillsOffered = skills
	}
	if input.SkillsWanted != nil {
		skills, err := validation.Skills(*input.SkillsWanted)
		if err != nil {
			return nil, err
		}
		target.SkillsWanted = skills
	}
	if input.Availability != nil {
		target.Availability = *input.Availability
	}
	if input.Visibility != nil {
		if *input.Visibility != models.VisibilityPublic && *input.Visibility != models.VisibilityPrivate {
			return nil, models.NewValidationError("Visibility must be public or private")
		}
		target.Visibility = *input.Visibility
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// ListUsers returns the public browse listing with sane pagination bounds.
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]models.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.userRepo.List(ctx, filter)
}

// GetByID exposes a raw user lookup for authentication plumbing.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
