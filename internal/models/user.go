// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// UserRole represents the capability role of a user account.
type UserRole string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser UserRole = "user"
	// RoleAdmin grants access to moderation routes and ownership overrides.
	RoleAdmin UserRole = "admin"
)

// UserStatus represents the account standing of a user.
type UserStatus string

const (
	// StatusActive allows login and participation.
	StatusActive UserStatus = "active"
	// StatusBanned blocks login; set by admins.
	StatusBanned UserStatus = "banned"
	// StatusSuspended blocks login; reserved for automated moderation.
	StatusSuspended UserStatus = "suspended"
)

// Visibility controls whether a profile is discoverable and contactable.
type Visibility string

const (
	// VisibilityPublic makes the profile browsable and a valid swap recipient.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate hides the profile from browsing and blocks new requests.
	VisibilityPrivate Visibility = "private"
)

// SkillList is an ordered list of skill names stored as a JSON column so the
// same model works on both Postgres and SQLite.
type SkillList []string

// Value implements driver.Valuer.
func (l SkillList) Value() (driver.Value, error) {
	if l == nil {
		l = SkillList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *SkillList) Scan(value interface{}) error {
	if value == nil {
		*l = SkillList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported skill list column type %T", value)
	}
}

// Availability describes when a user is free for sessions.
type Availability struct {
	Weekdays bool   `json:"weekdays"`
	Weekends bool   `json:"weekends"`
	Evenings bool   `json:"evenings"`
	Note     string `json:"note"`
}

// User represents a registered identity in the SkillSwap marketplace.
type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	Password     string       `gorm:"not null" json:"-"`
	Role         UserRole     `gorm:"type:varchar(20);default:'user'" json:"role"`
	Status       UserStatus   `gorm:"type:varchar(20);default:'active'" json:"status"`
	Visibility   Visibility   `gorm:"type:varchar(20);default:'public'" json:"visibility"`
	Bio          string       `json:"bio"`
	Location     string       `json:"location"`
	ProfilePhoto string       `json:"profile_photo"`
	SkillsOffered SkillList   `gorm:"type:text" json:"skills_offered"`
	SkillsWanted  SkillList   `gorm:"type:text" json:"skills_wanted"`
	Availability Availability `gorm:"embedded;embeddedPrefix:avail_" json:"availability"`

	// Rating is the recomputed mean of all ratings addressed to this user,
	// rounded to one decimal. TotalRatings is the size of that set.
	Rating       float64 `gorm:"default:0" json:"rating"`
	TotalRatings int     `gorm:"default:0" json:"total_ratings"`
	// TotalSwaps counts completed swaps this user participated in.
	TotalSwaps int `gorm:"default:0" json:"total_swaps"`

	LastActive time.Time      `json:"last_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive reports whether the account may authenticate and participate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
