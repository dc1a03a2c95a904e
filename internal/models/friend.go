package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is keyed by the ordered pair so (a, b) and (b, a) collide on insert.
type Friendship struct {
	PairLowID   uint      `gorm:"primaryKey;autoIncrement:false"`
	PairHighID  uint      `gorm:"primaryKey;autoIncrement:false"`
	RequesterID uint      `gorm:"not null;index"`
	Requester   User      `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	ReceiverID  uint      `gorm:"not null;index"`
	Receiver    User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// FriendshipView is the API representation of a friendship.
type FriendshipView struct {
	RequesterID uint        `json:"requesterId"`
	ReceiverID  uint        `json:"receiverId"`
	CreatedAt   time.Time   `json:"createdAt"`
	Requester   UserSummary `json:"requester"`
	Receiver    UserSummary `json:"receiver"`
}

// FriendView describes a friend from the point of view of one member.
type FriendView struct {
	UserSummary
	FriendsSince time.Time `json:"friendsSince"`
}

func (f *Friendship) View() FriendshipView {
	return FriendshipView{
		RequesterID: f.RequesterID,
		ReceiverID:  f.ReceiverID,
		CreatedAt:   f.CreatedAt,
		Requester:   f.Requester.Summary(),
		Receiver:    f.Receiver.Summary(),
	}
}

// Other returns the member of the friendship that is not userID.
func (f *Friendship) Other(userID uint) User {
	if f.RequesterID == userID {
		return f.Receiver
	}
	return f.Requester
}

// Involves reports whether the friendship is between a and b, in either order.
func (f *Friendship) Involves(a, b uint) bool {
	low, high := OrderedPair(a, b)
	return f.PairLowID == low && f.PairHighID == high
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.RequesterID == 0 || f.ReceiverID == 0 || f.RequesterID == f.ReceiverID {
		return gorm.ErrInvalidData
	}
	f.PairLowID, f.PairHighID = OrderedPair(f.RequesterID, f.ReceiverID)
	return nil
}

func (Friendship) TableName() string {
	return "friendships"
}
