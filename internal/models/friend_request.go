package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type FriendRequestStatus string

// Friend request status constants
const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusDeclined FriendRequestStatus = "declined"
)

// ParseFriendRequestStatus accepts the status names case-insensitively.
func ParseFriendRequestStatus(value string) (FriendRequestStatus, bool) {
	status := FriendRequestStatus(strings.ToLower(strings.TrimSpace(value)))
	return status, status.IsValid()
}

func (s FriendRequestStatus) IsValid() bool {
	switch s {
	case FriendRequestStatusPending, FriendRequestStatusAccepted, FriendRequestStatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s FriendRequestStatus) IsTerminal() bool {
	return s == FriendRequestStatusAccepted || s == FriendRequestStatusDeclined
}

// CanTransitionTo reports whether a write from s to next is allowed.
// Same-state writes are reported as not allowed; callers treat them as no-ops.
func (s FriendRequestStatus) CanTransitionTo(next FriendRequestStatus) bool {
	return s == FriendRequestStatusPending && next.IsTerminal()
}

// OrderedPair returns the pair (a, b) as (min, max).
func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// PendingPairKey is the value of FriendRequest.PendingPairKey while a request for {a, b} is pending.
func PendingPairKey(a, b uint) string {
	low, high := OrderedPair(a, b)
	return fmt.Sprintf("%d:%d", low, high)
}

type FriendRequest struct {
	ID          uint                `gorm:"primaryKey"`
	RequesterID uint                `gorm:"not null;index"`
	Requester   User                `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	ReceiverID  uint                `gorm:"not null;index"`
	Receiver    User                `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	PairLowID   uint                `gorm:"not null;index:idx_friend_requests_pair"`
	PairHighID  uint                `gorm:"not null;index:idx_friend_requests_pair"`
	Status      FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	// Set while pending, NULL once resolved; the unique index allows one pending request per pair.
	PendingPairKey *string   `gorm:"type:varchar(41);uniqueIndex"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	ResponseAt     time.Time `gorm:"not null"`
}

// FriendRequestView is the API representation of a friend request.
type FriendRequestView struct {
	FriendRequestID uint                `json:"friendRequestId"`
	RequesterID     uint                `json:"requesterId"`
	ReceiverID      uint                `json:"receiverId"`
	Status          FriendRequestStatus `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	ResponseAt      time.Time           `json:"responseAt"`
	Requester       UserSummary         `json:"requester"`
	Receiver        UserSummary         `json:"receiver"`
}

func (r *FriendRequest) View() FriendRequestView {
	return FriendRequestView{
		FriendRequestID: r.ID,
		RequesterID:     r.RequesterID,
		ReceiverID:      r.ReceiverID,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		ResponseAt:      r.ResponseAt,
		Requester:       r.Requester.Summary(),
		Receiver:        r.Receiver.Summary(),
	}
}

// Involves reports whether userID is the requester or the receiver.
func (r *FriendRequest) Involves(userID uint) bool {
	return r.RequesterID == userID || r.ReceiverID == userID
}

// BeforeCreate validates the pair and derives the canonical pair columns.
func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.RequesterID == 0 || r.ReceiverID == 0 || r.RequesterID == r.ReceiverID {
		return gorm.ErrInvalidData
	}
	if r.Status == "" {
		r.Status = FriendRequestStatusPending
	}
	if !r.Status.IsValid() {
		return gorm.ErrInvalidData
	}

	r.PairLowID, r.PairHighID = OrderedPair(r.RequesterID, r.ReceiverID)
	if r.Status == FriendRequestStatusPending {
		key := PendingPairKey(r.RequesterID, r.ReceiverID)
		r.PendingPairKey = &key
	} else {
		r.PendingPairKey = nil
	}
	return nil
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
