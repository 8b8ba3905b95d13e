// Package validation holds the single declarative set of field bounds shared
// by the API boundary and the service layer.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"skillswap/internal/models"
)

// Authoritative field bounds.
const (
	NameMinLen = 2
	NameMaxLen = 50

	EmailMaxLen = 254

	PasswordMinLen = 6
	PasswordMaxLen = 128

	SkillMaxLen  = 50
	SkillsMaxNum = 20

	MessageMinLen = 10
	MessageMaxLen = 1000

	CommentMinLen = 10
	CommentMaxLen = 500

	BioMaxLen      = 500
	LocationMaxLen = 100

	CancelReasonMinLen = 5
	CancelReasonMaxLen = 500

	ReportDetailsMaxLen = 500

	AnnouncementTitleMinLen   = 3
	AnnouncementTitleMaxLen   = 100
	AnnouncementMessageMinLen = 10
	AnnouncementMessageMaxLen = 1000

	ScoreMin = 1
	ScoreMax = 5
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Name validates a display name.
func Name(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < NameMinLen || len(name) > NameMaxLen {
		return models.NewValidationError(fmt.Sprintf("Name must be between %d and %d characters", NameMinLen, NameMaxLen))
	}
	return nil
}

// Email validates an email address shape and length.
func Email(email string) error {
	if len(email) > EmailMaxLen || !emailRegex.MatchString(email) {
		return models.NewValidationError("Please provide a valid email")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for case-insensitive uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Password validates password length bounds. Strength rules beyond length are
// intentionally not enforced.
func Password(password string) error {
	if len(password) < PasswordMinLen {
		return models.NewValidationError(fmt.Sprintf("Password must be at least %d characters", PasswordMinLen))
	}
	if len(password) > PasswordMaxLen {
		return models.NewValidationError(fmt.Sprintf("Password must not exceed %d characters", PasswordMaxLen))
	}
	return nil
}

// Skill validates a single skill name.
func Skill(skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" || len(skill) > SkillMaxLen {
		return models.NewValidationError(fmt.Sprintf("Skill names must be between 1 and %d characters", SkillMaxLen))
	}
	return nil
}

// Skills validates a skill list and returns a trimmed copy.
func Skills(skills []string) ([]string, error) {
	if len(skills) > SkillsMaxNum {
		return nil, models.NewValidationError(fmt.Sprintf("At most %d skills are allowed", SkillsMaxNum))
	}
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if err := Skill(s); err != nil {
			return nil, err
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, nil
}

// SwapMessage validates the free-text message on a swap request.
func SwapMessage(message string) error {
	message = strings.TrimSpace(message)
	if len(message) < MessageMinLen || len(message) > MessageMaxLen {
		return models.NewValidationError(fmt.Sprintf("Message must be between %d and %d characters", MessageMinLen, MessageMaxLen))
	}
	return nil
}

// RatingComment validates an optional rating comment. Empty is allowed.
func RatingComment(comment string) error {
	if comment == "" {
		return nil
	}
	comment = strings.TrimSpace(comment)
	if len(comment) < CommentMinLen || len(comment) > CommentMaxLen {
		return models.NewValidationError(fmt.Sprintf("Comment must be between %d and %d characters", CommentMinLen, CommentMaxLen))
	}
	return nil
}

// Score validates a rating score.
func Score(score int) error {
	if score < ScoreMin || score > ScoreMax {
		return models.NewValidationError(fmt.Sprintf("Rating must be between %d and %d", ScoreMin, ScoreMax))
	}
	return nil
}

// Bio validates a profile bio.
func Bio(bio string) error {
	if len(bio) > BioMaxLen {
		return models.NewValidationError(fmt.Sprintf("Bio cannot exceed %d characters", BioMaxLen))
	}
	return nil
}

// Location validates a profile location.
func Location(location string) error {
	if len(location) > LocationMaxLen {
		return models.NewValidationError(fmt.Sprintf("Location cannot exceed %d characters", LocationMaxLen))
	}
	return nil
}

// CancellationReason validates an optional cancellation reason. Empty is allowed.
func CancellationReason(reason string) error {
	if reason == "" {
		return nil
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < CancelReasonMinLen || len(reason) > CancelReasonMaxLen {
		return models.NewValidationError(fmt.Sprintf("Reason must be between %d and %d characters", CancelReasonMinLen, CancelReasonMaxLen))
	}
	return nil
}

// Report validates swap report fields.
func Report(reason models.ReportReason, details string) error {
	if !models.ValidReportReason(reason) {
		return models.NewValidationError("Invalid report reason")
	}
	if len(details) > ReportDetailsMaxLen {
		return models.NewValidationError(fmt.Sprintf("Report details cannot exceed %d characters", ReportDetailsMaxLen))
	}
	return nil
}

// Announcement validates announcement fields.
func Announcement(title, message string, typ models.AnnouncementType) error {
	title = strings.TrimSpace(title)
	if len(title) < AnnouncementTitleMinLen || len(title) > AnnouncementTitleMaxLen {
		return models.NewValidationError(fmt.Sprintf("Title must be between %d and %d characters", AnnouncementTitleMinLen, AnnouncementTitleMaxLen))
	}
	message = strings.TrimSpace(message)
	if len(message) < AnnouncementMessageMinLen || len(message) > AnnouncementMessageMaxLen {
		return models.NewValidationError(fmt.Sprintf("Message must be between %d and %d characters", AnnouncementMessageMinLen, AnnouncementMessageMaxLen))
	}
	if !models.ValidAnnouncementType(typ) {
		return models.NewValidationError("Invalid announcement type")
	}
	return nil
}
