package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

// User roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole accepts the role names case-insensitively ("Admin", "admin").
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

type User struct {
	ID           uint           `gorm:"primaryKey" json:"userId"`
	UserName     string         `gorm:"type:varchar(64);not null" json:"userName"`
	Email        string         `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`
	PlayerTag    string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"playerTag"`
	Money        int64          `gorm:"not null;default:0" json:"money"`
	Role         Role           `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserSummary is the directory projection embedded in friend and friend request views.
type UserSummary struct {
	UserID    uint   `json:"userId"`
	UserName  string `json:"userName"`
	PlayerTag string `json:"playerTag"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		UserID:    u.ID,
		UserName:  u.UserName,
		PlayerTag: u.PlayerTag,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeCreate hook for validation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(u.UserName) == "" || u.PlayerTag == "" {
		return gorm.ErrInvalidData
	}
	if !strings.Contains(u.Email, "@") {
		return gorm.ErrInvalidData
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if _, ok := ParseRole(string(u.Role)); !ok {
		return gorm.ErrInvalidData
	}
	if u.Money < 0 {
		return gorm.ErrInvalidData
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
