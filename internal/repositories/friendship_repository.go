package repositories

import (
	"context"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *FriendshipRepository) WithTx(tx *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: tx}
}

func pairCondition(a, b uint) (string, uint, uint) {
	low, high := models.OrderedPair(a, b)
	return "pair_low_id = ? AND pair_high_id = ?", low, high
}

// FindByUnorderedPair finds the friendship between a and b regardless of argument order
func (r *FriendshipRepository) FindByUnorderedPair(ctx context.Context, a, b uint) (*models.Friendship, error) {
	cond, low, high := pairCondition(a, b)

	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Receiver").
		Where(cond, low, high).
		First(&friendship).Error
	if err != nil {
		return nil, translateReadError(err, "friendship not found", "failed to get friendship")
	}

	return &friendship, nil
}

// Exists checks if a and b are friends
func (r *FriendshipRepository) Exists(ctx context.Context, a, b uint) (bool, error) {
	cond, low, high := pairCondition(a, b)

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Friendship{}).Where(cond, low, high).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check friendship")
	}
	return count > 0, nil
}

// Create stores the friendship for (requesterID, receiverID). An existing friendship for the
// pair in either order yields STORE_CONFLICT.
func (r *FriendshipRepository) Create(ctx context.Context, requesterID, receiverID uint) (*models.Friendship, error) {
	friendship := &models.Friendship{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
	}

	err := r.db.WithContext(ctx).Omit("Requester", "Receiver").Create(friendship).Error
	if err != nil {
		return nil, translateWriteError(err, "friendship already exists", "failed to create friendship")
	}

	return friendship, nil
}

// FindAllForUser lists every friendship userID is a member of, newest first
func (r *FriendshipRepository) FindAllForUser(ctx context.Context, userID uint) ([]models.Friendship, error) {
	friendships := []models.Friendship{}
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Receiver").
		Where("pair_low_id = ? OR pair_high_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friendships")
	}

	return friendships, nil
}

// Delete removes the friendship between a and b and returns it
func (r *FriendshipRepository) Delete(ctx context.Context, a, b uint) (*models.Friendship, error) {
	friendship, err := r.FindByUnorderedPair(ctx, a, b)
	if err != nil {
		return nil, err
	}

	cond, low, high := pairCondition(a, b)
	result := r.db.WithContext(ctx).Where(cond, low, high).Delete(&models.Friendship{})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove friend")
	}
	if result.RowsAffected == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "friendship not found")
	}

	return friendship, nil
}

// DeleteAllForUser removes every friendship userID is a member of
func (r *FriendshipRepository) DeleteAllForUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove friendships")
	}
	return result.RowsAffected, nil
}
