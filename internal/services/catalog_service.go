package services

import (
	"context"
	"strings"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/mroshb/shooty_game/pkg/errors"
)

type WeaponTypeInput struct {
	Name          string `json:"name"`
	EquipmentSlot int    `json:"equipmentSlot"`
}

type WeaponInput struct {
	WeaponTypeID uint   `json:"weaponTypeId"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	ReloadSpeed  int    `json:"reloadSpeed"`
	MagSize      int    `json:"magSize"`
	FireRate     int    `json:"fireRate"`
	FireMode     string `json:"fireMode"`
}

func (in WeaponInput) validate() (models.FireMode, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", errors.New(errors.ErrCodeValidation, "weapon name is required")
	}
	if in.WeaponTypeID == 0 {
		return "", errors.New(errors.ErrCodeValidation, "weapon type is required")
	}
	if in.Price < 0 || in.ReloadSpeed < 0 || in.MagSize < 0 || in.FireRate < 0 {
		return "", errors.New(errors.ErrCodeValidation, "weapon stats cannot be negative")
	}
	if in.FireMode == "" {
		return models.FireModeSingle, nil
	}
	mode, ok := models.ParseFireMode(in.FireMode)
	if !ok {
		return "", errors.New(errors.ErrCodeValidation, "fire mode must be single, burst or auto")
	}
	return mode, nil
}

// CatalogService manages weapon types and weapons
type CatalogService struct {
	weapons *repositories.WeaponRepository
}

func NewCatalogService(weapons *repositories.WeaponRepository) *CatalogService {
	return &CatalogService{weapons: weapons}
}

func (s *CatalogService) CreateWeaponType(ctx context.Context, in WeaponTypeInput) (*models.WeaponType, error) {
	if in.EquipmentSlot < 0 {
		return nil, errors.New(errors.ErrCodeValidation, "equipment slot cannot be negative")
	}
	weaponType := &models.WeaponType{Name: in.Name, EquipmentSlot: in.EquipmentSlot}
	if err := s.weapons.CreateWeaponType(ctx, weaponType); err != nil {
		return nil, err
	}
	return weaponType, nil
}

func (s *CatalogService) GetWeaponType(ctx context.Context, id uint) (*models.WeaponType, error) {
	return s.weapons.GetWeaponTypeByID(ctx, id)
}

func (s *CatalogService) ListWeaponTypes(ctx context.Context) ([]models.WeaponType, error) {
	return s.weapons.ListWeaponTypes(ctx)
}

func (s *CatalogService) UpdateWeaponType(ctx context.Context, id uint, in WeaponTypeInput) (*models.WeaponType, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "weapon type name is required")
	}
	if in.EquipmentSlot < 0 {
		return nil, errors.New(errors.ErrCodeValidation, "equipment slot cannot be negative")
	}

	weaponType, err := s.weapons.GetWeaponTypeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	weaponType.Name = strings.TrimSpace(in.Name)
	weaponType.EquipmentSlot = in.EquipmentSlot

	if err := s.weapons.UpdateWeaponType(ctx, weaponType); err != nil {
		return nil, err
	}
	return weaponType, nil
}

func (s *CatalogService) DeleteWeaponType(ctx context.Context, id uint) error {
	return s.weapons.DeleteWeaponType(ctx, id)
}

func (s *CatalogService) CreateWeapon(ctx context.Context, in WeaponInput) (*models.Weapon, error) {
	mode, err := in.validate()
	if err != nil {
		return nil, err
	}

	weapon := &models.Weapon{
		WeaponTypeID: in.WeaponTypeID,
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price,
		ReloadSpeed:  in.ReloadSpeed,
		MagSize:      in.MagSize,
		FireRate:     in.FireRate,
		FireMode:     mode,
	}
	if err := s.weapons.CreateWeapon(ctx, weapon); err != nil {
		return nil, err
	}
	return s.weapons.GetWeaponByID(ctx, weapon.ID)
}

func (s *CatalogService) GetWeapon(ctx context.Context, id uint) (*models.Weapon, error) {
	return s.weapons.GetWeaponByID(ctx, id)
}

// ListWeapons lists all weapons, or those of one type when weaponTypeID is set
func (s *CatalogService) ListWeapons(ctx context.Context, weaponTypeID uint) ([]models.Weapon, error) {
	return s.weapons.ListWeapons(ctx, weaponTypeID)
}

func (s *CatalogService) UpdateWeapon(ctx context.Context, id uint, in WeaponInput) (*models.Weapon, error) {
	mode, err := in.validate()
	if err != nil {
		return nil, err
	}

	weapon, err := s.weapons.GetWeaponByID(ctx, id)
	if err != nil {
		return nil, err
	}
	weapon.WeaponTypeID = in.WeaponTypeID
	weapon.Name = strings.TrimSpace(in.Name)
	weapon.Price = in.Price
	weapon.ReloadSpeed = in.ReloadSpeed
	weapon.MagSize = in.MagSize
	weapon.FireRate = in.FireRate
	weapon.FireMode = mode

	if err := s.weapons.UpdateWeapon(ctx, weapon); err != nil {
		return nil, err
	}
	return s.weapons.GetWeaponByID(ctx, id)
}

func (s *CatalogService) DeleteWeapon(ctx context.Context, id uint) error {
	return s.weapons.DeleteWeapon(ctx, id)
}
