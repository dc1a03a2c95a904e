package repositories

import (
	"context"
	"time"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
	"gorm.io/gorm"
)

type FriendRequestRepository struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *FriendRequestRepository) WithTx(tx *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: tx}
}

func (r *FriendRequestRepository) withUsers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Requester").Preload("Receiver")
}

// FindPendingByUnorderedPair finds the pending request between a and b in either direction
func (r *FriendRequestRepository) FindPendingByUnorderedPair(ctx context.Context, a, b uint) (*models.FriendRequest, error) {
	low, high := models.OrderedPair(a, b)

	var request models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("pair_low_id = ? AND pair_high_id = ? AND status = ?", low, high, models.FriendRequestStatusPending).
		First(&request).Error
	if err != nil {
		return nil, translateReadError(err, "friend request not found", "failed to get friend request")
	}

	return &request, nil
}

// FindByID retrieves a friend request in any status with requester and receiver loaded
func (r *FriendRequestRepository) FindByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.withUsers(ctx).First(&request, id).Error; err != nil {
		return nil, translateReadError(err, "friend request not found", "failed to get friend request")
	}
	return &request, nil
}

// FindByIDForUpdate reads the request row under a lock. Only meaningful inside a transaction.
func (r *FriendRequestRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := forUpdate(r.db.WithContext(ctx)).First(&request, id).Error; err != nil {
		return nil, translateReadError(err, "friend request not found", "failed to get friend request")
	}
	return &request, nil
}

// FindAllPendingByRequester lists pending requests sent by userID, newest first
func (r *FriendRequestRepository) FindAllPendingByRequester(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return r.findPending(ctx, "requester_id = ?", userID)
}

// FindAllPendingByReceiver lists pending requests addressed to userID, newest first
func (r *FriendRequestRepository) FindAllPendingByReceiver(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return r.findPending(ctx, "receiver_id = ?", userID)
}

func (r *FriendRequestRepository) findPending(ctx context.Context, cond string, userID uint) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := r.withUsers(ctx).
		Where(cond, userID).
		Where("status = ?", models.FriendRequestStatusPending).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get pending requests")
	}
	return requests, nil
}

// Create inserts a new friend request. A pending request for the same pair yields STORE_CONFLICT.
func (r *FriendRequestRepository) Create(ctx context.Context, request *models.FriendRequest) error {
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	if request.ResponseAt.IsZero() {
		request.ResponseAt = request.CreatedAt
	}

	err := r.db.WithContext(ctx).Omit("Requester", "Receiver").Create(request).Error
	return translateWriteError(err, "a pending friend request already exists for this pair", "failed to create friend request")
}

// UpdateStatus resolves request id. The write only applies if the stored status still equals
// from; the pending pair key is cleared so a new request for the pair becomes possible.
func (r *FriendRequestRepository) UpdateStatus(ctx context.Context, id uint, from, to models.FriendRequestStatus, responseAt time.Time) error {
	if !to.IsTerminal() {
		return errors.New(errors.ErrCodeInvalidTransition, "friend request can only be resolved to accepted or declined")
	}

	updates := map[string]interface{}{
		"status":           to,
		"response_at":      responseAt,
		"pending_pair_key": nil,
	}

	result := r.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return translateWriteError(result.Error, "a pending friend request already exists for this pair", "failed to update friend request")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.FriendRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check friend request")
		}
		if count == 0 {
			return errors.New(errors.ErrCodeNotFound, "friend request not found")
		}
		return errors.New(errors.ErrCodeStoreConflict, "friend request was modified concurrently")
	}

	return nil
}

// Delete removes a friend request and returns it as it was before removal
func (r *FriendRequestRepository) Delete(ctx context.Context, id uint) (*models.FriendRequest, error) {
	request, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, id)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete friend request")
	}
	if result.RowsAffected == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "friend request not found")
	}

	return request, nil
}

// DeleteAllForUser removes every request userID sent or received, in any status
func (r *FriendRequestRepository) DeleteAllForUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.FriendRequest{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove friend requests")
	}
	return result.RowsAffected, nil
}
