package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/mroshb/shooty_game/pkg/errors"
	"github.com/mroshb/shooty_game/pkg/logger"
	"gorm.io/gorm"
)

// FriendRequestService owns the friend request lifecycle and keeps it consistent with
// the friendship relation. Every guard and the write it protects run in one transaction.
type FriendRequestService struct {
	db          *gorm.DB
	requests    *repositories.FriendRequestRepository
	friendships *repositories.FriendshipRepository
	users       *repositories.UserRepository
}

func NewFriendRequestService(
	db *gorm.DB,
	requests *repositories.FriendRequestRepository,
	friendships *repositories.FriendshipRepository,
	users *repositories.UserRepository,
) *FriendRequestService {
	return &FriendRequestService{
		db:          db,
		requests:    requests,
		friendships: friendships,
		users:       users,
	}
}

// CreateRequest sends a friend request from requesterID to receiverID
func (s *FriendRequestService) CreateRequest(ctx context.Context, requesterID, receiverID uint) (*models.FriendRequest, error) {
	if requesterID == receiverID {
		return nil, errors.New(errors.ErrCodeSelfRequest, "cannot send a friend request to yourself")
	}

	var requestID uint
	err := database.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		requests := s.requests.WithTx(tx)
		friendships := s.friendships.WithTx(tx)

		for _, userID := range []uint{requesterID, receiverID} {
			exists, err := users.UserExists(ctx, userID)
			if err != nil {
				return err
			}
			if !exists {
				return errors.New(errors.ErrCodeNotFound, fmt.Sprintf("user %d not found", userID))
			}
		}

		_, err := requests.FindPendingByUnorderedPair(ctx, requesterID, receiverID)
		if err == nil {
			return errors.New(errors.ErrCodeDuplicateRequest, "a pending friend request already exists between these users")
		}
		if !errors.HasCode(err, errors.ErrCodeNotFound) {
			return err
		}

		friends, err := friendships.Exists(ctx, requesterID, receiverID)
		if err != nil {
			return err
		}
		if friends {
			return errors.New(errors.ErrCodeAlreadyFriends, "users are already friends")
		}

		request := &models.FriendRequest{
			RequesterID: requesterID,
			ReceiverID:  receiverID,
			Status:      models.FriendRequestStatusPending,
		}
		if err := requests.Create(ctx, request); err != nil {
			return err
		}
		requestID = request.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Friend request created", "request_id", requestID, "requester_id", requesterID, "receiver_id", receiverID)
	return s.requests.FindByID(ctx, requestID)
}

// FindRequestByID returns a request in any status; resolved requests stay visible until deleted
func (s *FriendRequestService) FindRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.requests.FindByID(ctx, id)
}

// ListPendingByRequester returns the pending requests userID has sent
func (s *FriendRequestService) ListPendingByRequester(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.requests.FindAllPendingByRequester(ctx, userID)
}

// ListPendingByReceiver returns the pending requests waiting on userID
func (s *FriendRequestService) ListPendingByReceiver(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.requests.FindAllPendingByReceiver(ctx, userID)
}

// UpdateStatus resolves a request. Writing the status it already has changes nothing.
// Pending→Accepted creates the friendship in the same transaction as the status write.
func (s *FriendRequestService) UpdateStatus(ctx context.Context, id uint, newStatus models.FriendRequestStatus) (*models.FriendRequest, error) {
	if !newStatus.IsValid() {
		return nil, errors.New(errors.ErrCodeValidation, fmt.Sprintf("invalid friend request status %q", newStatus))
	}

	var oldStatus models.FriendRequestStatus
	err := database.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)

		existing, err := requests.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		oldStatus = existing.Status

		users := s.users.WithTx(tx)
		for _, userID := range []uint{existing.RequesterID, existing.ReceiverID} {
			exists, err := users.UserExists(ctx, userID)
			if err != nil {
				return err
			}
			if !exists {
				return errors.New(errors.ErrCodeNotFound, fmt.Sprintf("user %d not found", userID))
			}
		}

		if oldStatus == newStatus {
			return nil
		}
		if !oldStatus.CanTransitionTo(newStatus) {
			return errors.New(errors.ErrCodeInvalidTransition,
				fmt.Sprintf("friend request is %s and cannot become %s", oldStatus, newStatus))
		}

		if err := requests.UpdateStatus(ctx, id, oldStatus, newStatus, time.Now().UTC()); err != nil {
			return err
		}

		if newStatus == models.FriendRequestStatusAccepted {
			_, err := s.friendships.WithTx(tx).Create(ctx, existing.RequesterID, existing.ReceiverID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeStoreConflict) {
			logger.Warn("Friend request update conflicted", "request_id", id, "status", newStatus, "error", err)
		}
		return nil, err
	}

	if oldStatus != newStatus {
		logger.Info("Friend request resolved", "request_id", id, "from", oldStatus, "to", newStatus)
	}
	return s.requests.FindByID(ctx, id)
}

// DeleteRequest removes a request regardless of its status and returns it
func (s *FriendRequestService) DeleteRequest(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var deleted *models.FriendRequest
	err := database.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		deleted, err = s.requests.WithTx(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Friend request deleted", "request_id", id)
	return deleted, nil
}
