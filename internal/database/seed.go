package database

import (
	"fmt"
	"os"
	"strings"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/security"
	"github.com/mroshb/shooty_game/pkg/logger"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type SeedWeaponType struct {
	Name          string `yaml:"name"`
	EquipmentSlot int    `yaml:"equipment_slot"`
}

type SeedWeapon struct {
	Name        string `yaml:"name"`
	WeaponType  string `yaml:"weapon_type"`
	Price       int64  `yaml:"price"`
	ReloadSpeed int    `yaml:"reload_speed"`
	MagSize     int    `yaml:"mag_size"`
	FireRate    int    `yaml:"fire_rate"`
	FireMode    string `yaml:"fire_mode"`
}

type SeedAdmin struct {
	UserName string `yaml:"user_name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SeedData struct {
	WeaponTypes []SeedWeaponType `yaml:"weapon_types"`
	Weapons     []SeedWeapon     `yaml:"weapons"`
	Admin       *SeedAdmin       `yaml:"admin"`
}

// LoadSeedFile reads seed data from a YAML file
func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &data, nil
}

// Seed inserts the weapon catalog and admin account that are missing. Existing rows are left alone.
func Seed(db *gorm.DB, data *SeedData, startingMoney int64) error {
	logger.Info("Checking seed data...")

	return db.Transaction(func(tx *gorm.DB) error {
		typeIDs := make(map[string]uint, len(data.WeaponTypes))
		for _, st := range data.WeaponTypes {
			var weaponType models.WeaponType
			err := tx.Where("name = ?", st.Name).First(&weaponType).Error
			if err == gorm.ErrRecordNotFound {
				weaponType = models.WeaponType{Name: st.Name, EquipmentSlot: st.EquipmentSlot}
				if err := tx.Create(&weaponType).Error; err != nil {
					return fmt.Errorf("failed to seed weapon type %q: %w", st.Name, err)
				}
				logger.Info("Seeded weapon type", "name", st.Name)
			} else if err != nil {
				return fmt.Errorf("failed to look up weapon type %q: %w", st.Name, err)
			}
			typeIDs[st.Name] = weaponType.ID
		}

		for _, sw := range data.Weapons {
			typeID, ok := typeIDs[sw.WeaponType]
			if !ok {
				return fmt.Errorf("weapon %q references unknown weapon type %q", sw.Name, sw.WeaponType)
			}

			var count int64
			if err := tx.Model(&models.Weapon{}).Where("name = ?", sw.Name).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to look up weapon %q: %w", sw.Name, err)
			}
			if count > 0 {
				continue
			}

			mode, ok := models.ParseFireMode(sw.FireMode)
			if !ok {
				return fmt.Errorf("weapon %q has invalid fire mode %q", sw.Name, sw.FireMode)
			}
			weapon := models.Weapon{
				WeaponTypeID: typeID,
				Name:         sw.Name,
				Price:        sw.Price,
				ReloadSpeed:  sw.ReloadSpeed,
				MagSize:      sw.MagSize,
				FireRate:     sw.FireRate,
				FireMode:     mode,
			}
			if err := tx.Omit("WeaponType").Create(&weapon).Error; err != nil {
				return fmt.Errorf("failed to seed weapon %q: %w", sw.Name, err)
			}
			logger.Info("Seeded weapon", "name", sw.Name)
		}

		if data.Admin == nil {
			return nil
		}

		var count int64
		if err := tx.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if count > 0 {
			return nil
		}

		hash, err := security.HashPassword(data.Admin.Password)
		if err != nil {
			return fmt.Errorf("invalid admin password: %w", err)
		}
		userName := security.SanitizeUserName(data.Admin.UserName)
		admin := models.User{
			UserName:     userName,
			Email:        strings.ToLower(strings.TrimSpace(data.Admin.Email)),
			PasswordHash: hash,
			PlayerTag:    security.GeneratePlayerTag(userName),
			Money:        startingMoney,
			Role:         models.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		logger.Info("Seeded admin account", "email", admin.Email)
		return nil
	})
}
