package repositories

import (
	"context"
	"strings"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
	"gorm.io/gorm"
)

type WeaponRepository struct {
	db *gorm.DB
}

func NewWeaponRepository(db *gorm.DB) *WeaponRepository {
	return &WeaponRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *WeaponRepository) WithTx(tx *gorm.DB) *WeaponRepository {
	return &WeaponRepository{db: tx}
}

// Weapon types

func (r *WeaponRepository) CreateWeaponType(ctx context.Context, weaponType *models.WeaponType) error {
	weaponType.Name = strings.TrimSpace(weaponType.Name)
	if weaponType.Name == "" {
		return errors.New(errors.ErrCodeValidation, "weapon type name is required")
	}

	err := r.db.WithContext(ctx).Create(weaponType).Error
	if isDuplicateKey(err) {
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, "weapon type already exists")
	}
	return translateWriteError(err, "weapon type already exists", "failed to create weapon type")
}

func (r *WeaponRepository) GetWeaponTypeByID(ctx context.Context, id uint) (*models.WeaponType, error) {
	var weaponType models.WeaponType
	if err := r.db.WithContext(ctx).First(&weaponType, id).Error; err != nil {
		return nil, translateReadError(err, "weapon type not found", "failed to get weapon type")
	}
	return &weaponType, nil
}

func (r *WeaponRepository) GetWeaponTypeByName(ctx context.Context, name string) (*models.WeaponType, error) {
	var weaponType models.WeaponType
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&weaponType).Error; err != nil {
		return nil, translateReadError(err, "weapon type not found", "failed to get weapon type")
	}
	return &weaponType, nil
}

func (r *WeaponRepository) ListWeaponTypes(ctx context.Context) ([]models.WeaponType, error) {
	weaponTypes := []models.WeaponType{}
	if err := r.db.WithContext(ctx).Order("equipment_slot ASC, id ASC").Find(&weaponTypes).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list weapon types")
	}
	return weaponTypes, nil
}

func (r *WeaponRepository) UpdateWeaponType(ctx context.Context, weaponType *models.WeaponType) error {
	err := r.db.WithContext(ctx).Save(weaponType).Error
	if isDuplicateKey(err) {
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, "weapon type already exists")
	}
	return translateWriteError(err, "weapon type already exists", "failed to update weapon type")
}

func (r *WeaponRepository) DeleteWeaponType(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.WeaponType{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete weapon type")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "weapon type not found")
	}
	return nil
}

// Weapons

// CreateWeapon creates a weapon; the weapon type must exist
func (r *WeaponRepository) CreateWeapon(ctx context.Context, weapon *models.Weapon) error {
	if _, err := r.GetWeaponTypeByID(ctx, weapon.WeaponTypeID); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Omit("WeaponType").Create(weapon).Error
	if isDuplicateKey(err) {
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, "weapon already exists")
	}
	return translateWriteError(err, "weapon already exists", "failed to create weapon")
}

func (r *WeaponRepository) GetWeaponByID(ctx context.Context, id uint) (*models.Weapon, error) {
	var weapon models.Weapon
	if err := r.db.WithContext(ctx).Preload("WeaponType").First(&weapon, id).Error; err != nil {
		return nil, translateReadError(err, "weapon not found", "failed to get weapon")
	}
	return &weapon, nil
}

func (r *WeaponRepository) GetWeaponByName(ctx context.Context, name string) (*models.Weapon, error) {
	var weapon models.Weapon
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&weapon).Error; err != nil {
		return nil, translateReadError(err, "weapon not found", "failed to get weapon")
	}
	return &weapon, nil
}

// ListWeapons lists weapons, optionally restricted to one weapon type
func (r *WeaponRepository) ListWeapons(ctx context.Context, weaponTypeID uint) ([]models.Weapon, error) {
	query := r.db.WithContext(ctx).Preload("WeaponType").Order("id ASC")
	if weaponTypeID != 0 {
		query = query.Where("weapon_type_id = ?", weaponTypeID)
	}

	weapons := []models.Weapon{}
	if err := query.Find(&weapons).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list weapons")
	}
	return weapons, nil
}

// UpdateWeapon saves weapon; the weapon type must exist
func (r *WeaponRepository) UpdateWeapon(ctx context.Context, weapon *models.Weapon) error {
	if _, err := r.GetWeaponTypeByID(ctx, weapon.WeaponTypeID); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Omit("WeaponType").Save(weapon).Error
	if isDuplicateKey(err) {
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, "weapon already exists")
	}
	return translateWriteError(err, "weapon already exists", "failed to update weapon")
}

func (r *WeaponRepository) DeleteWeapon(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Weapon{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete weapon")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "weapon not found")
	}
	return nil
}
