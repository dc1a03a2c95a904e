package models

import (
	"time"

	"gorm.io/gorm"
)

type Score struct {
	ID              uint      `gorm:"primaryKey" json:"scoreId"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	User            User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ScoreValue      int       `gorm:"not null;index" json:"scoreValue"`
	AverageAccuracy float64   `gorm:"not null;default:0" json:"averageAccuracy"`
	RoundTime       float64   `gorm:"not null;default:0" json:"roundTime"` // seconds
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// BeforeSave hook for validation
func (s *Score) BeforeSave(tx *gorm.DB) error {
	if s.UserID == 0 || s.ScoreValue < 0 || s.RoundTime < 0 {
		return gorm.ErrInvalidData
	}
	if s.AverageAccuracy < 0 || s.AverageAccuracy > 100 {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Score) TableName() string {
	return "scores"
}
