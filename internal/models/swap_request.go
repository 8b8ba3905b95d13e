package models

import (
	"fmt"
	"time"
)

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	// SwapStatusPending is the initial state of every swap request.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted means the recipient agreed to the exchange.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected is terminal; only the recipient can reject.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCancelled is terminal; either party can cancel before completion.
	SwapStatusCancelled SwapStatus = "cancelled"
	// SwapStatusCompleted is terminal; set after both sides finished the exchange.
	SwapStatusCompleted SwapStatus = "completed"
)

// ReportReason enumerates accepted report categories for a swap request.
type ReportReason string

const (
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonFakeProfile   ReportReason = "fake_profile"
	ReportReasonNoShow        ReportReason = "no_show"
	ReportReasonOther         ReportReason = "other"
)

// ValidReportReason reports whether r is one of the accepted report categories.
func ValidReportReason(r ReportReason) bool {
	switch r {
	case ReportReasonInappropriate, ReportReasonSpam, ReportReasonFakeProfile,
		ReportReasonNoShow, ReportReasonOther:
		return true
	}
	return false
}

// SwapRequest represents a bilateral proposal to exchange one skill for
// another between two users.
type SwapRequest struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RequesterID    uint       `gorm:"not null;index:idx_swap_requester_status" json:"requester_id"`
	RecipientID    uint       `gorm:"not null;index:idx_swap_recipient_status" json:"recipient_id"`
	RequestedSkill string     `gorm:"not null" json:"requested_skill"`
	OfferedSkill   string     `gorm:"not null" json:"offered_skill"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	Status         SwapStatus `gorm:"type:varchar(20);default:'pending';index:idx_swap_requester_status;index:idx_swap_recipient_status" json:"status"`

	// PendingPair is populated while Status is pending and cleared on every
	// transition out of pending. Its unique index is the single source of
	// truth for the "one pending request per pair" invariant; the encoding
	// (directional or symmetric) is chosen at create time from configuration.
	PendingPair *string `gorm:"uniqueIndex" json:"-"`

	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *uint      `json:"cancelled_by,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`

	IsReported    bool         `gorm:"default:false;index" json:"is_reported"`
	ReportReason  ReportReason `gorm:"type:varchar(30)" json:"report_reason,omitempty"`
	ReportDetails string       `json:"report_details,omitempty"`
	ReportedBy    *uint        `json:"reported_by,omitempty"`
	ReportedAt    *time.Time   `json:"reported_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// IsParty reports whether the given user is the requester or recipient.
func (s *SwapRequest) IsParty(userID uint) bool {
	return s.RequesterID == userID || s.RecipientID == userID
}

// OtherParty returns the counterpart of the given user on this swap.
// The second return value is false when the user is not a party at all.
func (s *SwapRequest) OtherParty(userID uint) (uint, bool) {
	switch userID {
	case s.RequesterID:
		return s.RecipientID, true
	case s.RecipientID:
		return s.RequesterID, true
	}
	return 0, false
}

// DirectionalPairKey encodes a pending pair keeping request direction distinct.
func DirectionalPairKey(requesterID, recipientID uint) string {
	return fmt.Sprintf("%d>%d", requesterID, recipientID)
}

// SymmetricPairKey encodes a pending pair so either direction collides.
func SymmetricPairKey(requesterID, recipientID uint) string {
	lo, hi := requesterID, recipientID
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%d:%d", lo, hi)
}
