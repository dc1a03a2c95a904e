package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type FireMode string

const (
	FireModeSingle FireMode = "single"
	FireModeBurst  FireMode = "burst"
	FireModeAuto   FireMode = "auto"
)

func ParseFireMode(value string) (FireMode, bool) {
	mode := FireMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case FireModeSingle, FireModeBurst, FireModeAuto:
		return mode, true
	}
	return "", false
}

type WeaponType struct {
	ID            uint           `gorm:"primaryKey" json:"weaponTypeId"`
	Name          string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	EquipmentSlot int            `gorm:"not null" json:"equipmentSlot"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WeaponType) TableName() string {
	return "weapon_types"
}

type Weapon struct {
	ID           uint           `gorm:"primaryKey" json:"weaponId"`
	WeaponTypeID uint           `gorm:"not null;index" json:"weaponTypeId"`
	WeaponType   WeaponType     `gorm:"foreignKey:WeaponTypeID;constraint:OnDelete:CASCADE" json:"weaponType"`
	Name         string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Price        int64          `gorm:"not null;default:0" json:"price"`
	ReloadSpeed  int            `gorm:"not null" json:"reloadSpeed"`
	MagSize      int            `gorm:"not null" json:"magSize"`
	FireRate     int            `gorm:"not null" json:"fireRate"`
	FireMode     FireMode       `gorm:"type:varchar(10);not null;default:'single'" json:"fireMode"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave hook for validation
func (w *Weapon) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(w.Name) == "" || w.WeaponTypeID == 0 {
		return gorm.ErrInvalidData
	}
	if w.Price < 0 || w.ReloadSpeed < 0 || w.MagSize < 0 || w.FireRate < 0 {
		return gorm.ErrInvalidData
	}
	if w.FireMode == "" {
		w.FireMode = FireModeSingle
	}
	if _, ok := ParseFireMode(string(w.FireMode)); !ok {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Weapon) TableName() string {
	return "weapons"
}

// UserWeapon records that a user owns a weapon.
type UserWeapon struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	WeaponID  uint      `gorm:"primaryKey;autoIncrement:false" json:"weaponId"`
	Weapon    Weapon    `gorm:"foreignKey:WeaponID;constraint:OnDelete:CASCADE" json:"weapon"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (UserWeapon) TableName() string {
	return "user_weapons"
}
