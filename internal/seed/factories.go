// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var skillPool = []string{
	"Guitar", "Piano", "Singing", "Music Production",
	"Spanish", "French", "German", "Japanese", "Mandarin",
	"Cooking", "Baking", "Photography", "Video Editing",
	"Drawing", "Painting", "Pottery", "Knitting",
	"Yoga", "Running Coaching", "Swimming", "Chess",
	"Web Development", "Data Analysis", "Public Speaking", "Creative Writing",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	r    *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, opts: opts, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// pickSkills returns n distinct skills from the pool.
func (f *Factory) pickSkills(n int) models.SkillList {
	perm := f.r.Perm(len(skillPool))
	skills := make(models.SkillList, 0, n)
	for _, idx := range perm[:n] {
		skills = append(skills, skillPool[idx])
	}
	return skills
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:          gofakeit.Name(),
		Email:         gofakeit.Email(),
		Role:          models.RoleUser,
		Status:        models.StatusActive,
		Visibility:    models.VisibilityPublic,
		Bio:           gofakeit.Sentence(10),
		Location:      gofakeit.City(),
		ProfilePhoto:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		SkillsOffered: f.pickSkills(2),
		SkillsWanted:  f.pickSkills(2),
		Availability: models.Availability{
			Weekdays: gofakeit.Bool(),
			Weekends: gofakeit.Bool(),
			Evenings: gofakeit.Bool(),
		},
		LastActive: time.Now().Add(-time.Duration(f.r.Intn(72)) * time.Hour),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSwap constructs and persists a swap request between two users in the
// given status, with consistent timestamps and pair key for the status.
func (f *Factory) CreateSwap(requester, recipient *models.User, status models.SwapStatus, overrides ...func(*models.SwapRequest)) (*models.SwapRequest, error) {
	created := time.Now().Add(-time.Duration(f.r.Intn(30*24)) * time.Hour)
	swap := &models.SwapRequest{
		RequesterID:    requester.ID,
		RecipientID:    recipient.ID,
		RequestedSkill: pick(f.r, recipient.SkillsOffered),
		OfferedSkill:   pick(f.r, requester.SkillsOffered),
		Message:        gofakeit.Sentence(12),
		Status:         status,
		CreatedAt:      created,
	}

	switch status {
	case models.SwapStatusPending:
		pair := models.SymmetricPairKey(requester.ID, recipient.ID)
		swap.PendingPair = &pair
	case models.SwapStatusAccepted:
		accepted := created.Add(time.Duration(1+f.r.Intn(48)) * time.Hour)
		swap.AcceptedAt = &accepted
	case models.SwapStatusCompleted:
		accepted := created.Add(time.Duration(1+f.r.Intn(48)) * time.Hour)
		completed := accepted.Add(time.Duration(1+f.r.Intn(14*24)) * time.Hour)
		swap.AcceptedAt = &accepted
		swap.CompletedAt = &completed
	case models.SwapStatusCancelled:
		cancelled := created.Add(time.Duration(1+f.r.Intn(48)) * time.Hour)
		swap.CancelledAt = &cancelled
		swap.CancelledBy = &requester.ID
		swap.CancellationReason = "Schedule conflict"
	}

	for _, override := range overrides {
		override(swap)
	}

	if err := f.db.Create(swap).Error; err != nil {
		return nil, err
	}
	return swap, nil
}

// CreateRating persists a rating from the author about their counterpart on a
// completed swap. The rated user's aggregate is NOT recomputed here; callers
// batch that at the end of seeding.
func (f *Factory) CreateRating(swap *models.SwapRequest, authorID uint, overrides ...func(*models.Rating)) (*models.Rating, error) {
	toUserID, ok := swap.OtherParty(authorID)
	if !ok {
		return nil, fmt.Errorf("user %d is not a party of swap %d", authorID, swap.ID)
	}

	rating := &models.Rating{
		FromUserID: authorID,
		ToUserID:   toUserID,
		SwapID:     swap.ID,
		Score:      3 + f.r.Intn(3), // skew positive like real marketplaces
		Comment:    gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(rating)
	}

	if err := f.db.Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

// CreateAnnouncement persists a platform announcement authored by the given admin.
func (f *Factory) CreateAnnouncement(author *models.User, overrides ...func(*models.Announcement)) (*models.Announcement, error) {
	types := []models.AnnouncementType{
		models.AnnouncementInfo, models.AnnouncementWarning, models.AnnouncementSuccess,
	}
	announcement := &models.Announcement{
		Title:     gofakeit.Sentence(3),
		Message:   gofakeit.Paragraph(1, 2, 8, " "),
		Type:      types[f.r.Intn(len(types))],
		CreatedBy: author.ID,
		IsActive:  true,
	}

	for _, override := range overrides {
		override(announcement)
	}

	if err := f.db.Create(announcement).Error; err != nil {
		return nil, err
	}
	return announcement, nil
}

func pick(r *rand.Rand, skills models.SkillList) string {
	if len(skills) == 0 {
		return skillPool[r.Intn(len(skillPool))]
	}
	return skills[r.Intn(len(skills))]
}
