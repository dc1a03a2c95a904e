package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := r.db.WithContext(ctx).Create(user).Error
	if isDuplicateKey(err) {
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, "a user with this email already exists")
	}
	return translateWriteError(err, "user already exists", "failed to create user")
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateReadError(err, "user not found", "failed to get user")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, translateReadError(err, "user not found", "failed to get user")
	}
	return &user, nil
}

// FindSummaryByID returns the directory projection of a user
func (r *UserRepository) FindSummaryByID(ctx context.Context, id uint) (models.UserSummary, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return models.UserSummary{}, err
	}
	return user.Summary(), nil
}

// UserExists checks if a non-deleted user exists
func (r *UserRepository) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check user existence")
	}
	return count > 0, nil
}

// ListUsers returns a page of users ordered by ID
func (r *UserRepository) ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count users")
	}

	users := []models.User{}
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list users")
	}
	return users, total, nil
}

// UpdateUser updates user information
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := r.db.WithContext(ctx).Save(user).Error
	if isDuplicateKey(err) {
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, "a user with this email already exists")
	}
	return translateWriteError(err, "user already exists", "failed to update user")
}

// DeleteUser soft-deletes a user
func (r *UserRepository) DeleteUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return nil
}

// GrantWeapons gives weaponIDs to a user for free. IDs that do not exist in the catalog or
// are already owned are skipped.
func (r *UserRepository) GrantWeapons(ctx context.Context, userID uint, weaponIDs []uint) ([]uint, error) {
	if len(weaponIDs) == 0 {
		return nil, nil
	}

	var existing []uint
	if err := r.db.WithContext(ctx).Model(&models.Weapon{}).Where("id IN ?", weaponIDs).Pluck("id", &existing).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to look up weapons")
	}

	granted := make([]uint, 0, len(existing))
	for _, weaponID := range existing {
		owned, err := r.OwnsWeapon(ctx, userID, weaponID)
		if err != nil {
			return nil, err
		}
		if owned {
			continue
		}
		link := &models.UserWeapon{UserID: userID, WeaponID: weaponID}
		if err := r.db.WithContext(ctx).Omit("User", "Weapon").Create(link).Error; err != nil {
			return nil, translateWriteError(err, "weapon already owned", "failed to grant weapon")
		}
		granted = append(granted, weaponID)
	}

	return granted, nil
}

// OwnsWeapon checks if the user owns weaponID
func (r *UserRepository) OwnsWeapon(ctx context.Context, userID, weaponID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserWeapon{}).
		Where("user_id = ? AND weapon_id = ?", userID, weaponID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check weapon ownership")
	}
	return count > 0, nil
}

// ListWeapons lists the weapons a user owns
func (r *UserRepository) ListWeapons(ctx context.Context, userID uint) ([]models.Weapon, error) {
	weapons := []models.Weapon{}
	err := r.db.WithContext(ctx).
		Preload("WeaponType").
		Joins("JOIN user_weapons ON user_weapons.weapon_id = weapons.id").
		Where("user_weapons.user_id = ?", userID).
		Order("weapons.id ASC").
		Find(&weapons).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user weapons")
	}
	return weapons, nil
}

// PurchaseWeapon deducts the weapon price from the user's money and records ownership.
// Must run inside a transaction; the user row is locked for the balance check.
func (r *UserRepository) PurchaseWeapon(ctx context.Context, userID, weaponID uint) (*models.User, error) {
	var user models.User
	if err := forUpdate(r.db.WithContext(ctx)).First(&user, userID).Error; err != nil {
		return nil, translateReadError(err, "user not found", "failed to get user")
	}

	var weapon models.Weapon
	if err := r.db.WithContext(ctx).First(&weapon, weaponID).Error; err != nil {
		return nil, translateReadError(err, "weapon not found", "failed to get weapon")
	}

	owned, err := r.OwnsWeapon(ctx, userID, weaponID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "weapon already owned")
	}

	// Check sufficient balance
	if user.Money < weapon.Price {
		return nil, errors.New(errors.ErrCodeInsufficientFunds, fmt.Sprintf("insufficient money: have %d, need %d", user.Money, weapon.Price))
	}

	newBalance := user.Money - weapon.Price
	if err := r.db.WithContext(ctx).Model(&user).Update("money", newBalance).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update balance")
	}

	link := &models.UserWeapon{UserID: userID, WeaponID: weaponID}
	if err := r.db.WithContext(ctx).Omit("User", "Weapon").Create(link).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errors.Wrap(err, errors.ErrCodeAlreadyExists, "weapon already owned")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to record purchase")
	}

	user.Money = newBalance
	return &user, nil
}

// AddMoney credits amount to the user's balance and returns the user with the new balance.
// Must run inside a transaction; the user row is locked like in PurchaseWeapon.
func (r *UserRepository) AddMoney(ctx context.Context, userID uint, amount int64) (*models.User, error) {
	var user models.User
	if err := forUpdate(r.db.WithContext(ctx)).First(&user, userID).Error; err != nil {
		return nil, translateReadError(err, "user not found", "failed to get user")
	}

	newBalance := user.Money + amount
	if newBalance < 0 {
		return nil, errors.New(errors.ErrCodeInsufficientFunds, fmt.Sprintf("insufficient money: have %d, need %d", user.Money, -amount))
	}
	if err := r.db.WithContext(ctx).Model(&user).Update("money", newBalance).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to update balance")
	}

	user.Money = newBalance
	return &user, nil
}

// RemoveWeapon takes a weapon away from a user without refund
func (r *UserRepository) RemoveWeapon(ctx context.Context, userID, weaponID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND weapon_id = ?", userID, weaponID).
		Delete(&models.UserWeapon{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove weapon")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "weapon not owned by user")
	}
	return nil
}
