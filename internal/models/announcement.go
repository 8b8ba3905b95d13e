package models

import "time"

// AnnouncementType categorizes a platform-wide announcement.
type AnnouncementType string

const (
	AnnouncementInfo    AnnouncementType = "info"
	AnnouncementWarning AnnouncementType = "warning"
	AnnouncementSuccess AnnouncementType = "success"
	AnnouncementError   AnnouncementType = "error"
)

// ValidAnnouncementType reports whether t is an accepted announcement type.
func ValidAnnouncementType(t AnnouncementType) bool {
	switch t {
	case AnnouncementInfo, AnnouncementWarning, AnnouncementSuccess, AnnouncementError:
		return true
	}
	return false
}

// Announcement is an admin broadcast shown to all users.
type Announcement struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      AnnouncementType `gorm:"type:varchar(20);default:'info'" json:"type"`
	CreatedBy uint             `gorm:"not null" json:"created_by"`
	IsActive  bool             `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}
