package models

import "time"

// Rating is a one-way post-completion review from one swap party about the other.
type Rating struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FromUserID uint   `gorm:"not null;uniqueIndex:idx_rating_swap_author;index" json:"from_user_id"`
	ToUserID   uint   `gorm:"not null;index" json:"to_user_id"`
	SwapID     uint   `gorm:"not null;uniqueIndex:idx_rating_swap_author" json:"swap_id"`
	Score      int    `gorm:"not null" json:"score"`
	Comment    string `json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	FromUser User        `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User        `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
	Swap     SwapRequest `gorm:"foreignKey:SwapID" json:"swap,omitempty"`
}

// RatingEditWindow is how long the author may edit a rating after creation.
const RatingEditWindow = 24 * time.Hour

// RatingSummary is the aggregate view of ratings addressed to one user.
// A user with no ratings gets the zero value (no division by zero).
type RatingSummary struct {
	AverageRating float64     `json:"averageRating"`
	TotalRatings  int         `json:"totalRatings"`
	Distribution  map[int]int `json:"ratingDistribution"`
}

// EmptyRatingSummary returns a zeroed summary with all histogram buckets present.
func EmptyRatingSummary() RatingSummary {
	return RatingSummary{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
}
