package seed

import (
	"context"
	"fmt"
	"log"

	"skillswap/internal/models"
	"skillswap/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool
	// SkipBcrypt stores a plaintext placeholder instead of hashing, for fast
	// local seeding where nobody logs in as the generated users.
	SkipBcrypt bool
}

// Seed populates the database with demo data: users with skills, swap
// requests across the whole lifecycle, ratings on completed swaps and a
// couple of announcements. Aggregates are recomputed at the end so profile
// ratings match the rating rows.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers < 2 {
		opts.NumUsers = 10
	}
	if opts.NumSwaps < 1 {
		opts.NumSwaps = opts.NumUsers * 2
	}
	log.Printf("Seeding database with %d users and %d swap requests...", opts.NumUsers, opts.NumSwaps)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	admin, err := ensureAdmin(db, factory)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	statuses := []models.SwapStatus{
		models.SwapStatusPending,
		models.SwapStatusAccepted,
		models.SwapStatusCompleted,
		models.SwapStatusCompleted,
		models.SwapStatusRejected,
		models.SwapStatusCancelled,
	}

	rated := map[uint]bool{}
	created := 0
	for attempts := 0; created < opts.NumSwaps && attempts < opts.NumSwaps*4; attempts++ {
		requester := users[factory.r.Intn(len(users))]
		recipient := users[factory.r.Intn(len(users))]
		if requester.ID == recipient.ID {
			continue
		}

		status := statuses[created%len(statuses)]
		swap, err := factory.CreateSwap(requester, recipient, status)
		if err != nil {
			// Most likely a pending pair collision; pick another pair.
			continue
		}
		created++

		if status == models.SwapStatusCompleted {
			db.Model(&models.User{}).
				Where("id IN ?", []uint{requester.ID, recipient.ID}).
				Update("total_swaps", gorm.Expr("total_swaps + 1"))

			if _, err := factory.CreateRating(swap, requester.ID); err == nil {
				rated[recipient.ID] = true
			}
			// The counterpart rates back roughly half the time
			if factory.r.Intn(2) == 0 {
				if _, err := factory.CreateRating(swap, recipient.ID); err == nil {
					rated[requester.ID] = true
				}
			}
		}
	}
	log.Printf("Created %d swap requests", created)

	ratingRepo := repository.NewRatingRepository(db)
	for userID := range rated {
		if err := ratingRepo.RecomputeUserAggregate(context.Background(), userID); err != nil {
			return fmt.Errorf("failed to recompute aggregate for user %d: %w", userID, err)
		}
	}
	log.Printf("Recomputed rating aggregates for %d users", len(rated))

	for i := 0; i < 2; i++ {
		if _, err := factory.CreateAnnouncement(admin); err != nil {
			return fmt.Errorf("failed to create announcement: %w", err)
		}
	}

	log.Println("Seeding complete")
	return nil
}

// ensureAdmin creates the demo admin account if it does not exist yet.
func ensureAdmin(db *gorm.DB, factory *Factory) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", "admin@skillswap.local").First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return factory.CreateUser(func(u *models.User) {
		u.Name = "SkillSwap Admin"
		u.Email = "admin@skillswap.local"
		u.Password = string(hashed)
		u.Role = models.RoleAdmin
	})
}

// clearData removes seeded rows. Order matters because of foreign keys.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Rating{},
		&models.SwapRequest{},
		&models.Announcement{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
