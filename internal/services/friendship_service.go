package services

import (
	"context"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/mroshb/shooty_game/pkg/errors"
	"github.com/mroshb/shooty_game/pkg/logger"
)

type FriendshipService struct {
	friendships *repositories.FriendshipRepository
	users       *repositories.UserRepository
}

func NewFriendshipService(friendships *repositories.FriendshipRepository, users *repositories.UserRepository) *FriendshipService {
	return &FriendshipService{
		friendships: friendships,
		users:       users,
	}
}

// ListFriends returns the other member of every friendship of userID
func (s *FriendshipService) ListFriends(ctx context.Context, userID uint) ([]models.FriendView, error) {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}

	friendships, err := s.friendships.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]models.FriendView, 0, len(friendships))
	for i := range friendships {
		other := friendships[i].Other(userID)
		friends = append(friends, models.FriendView{
			UserSummary:  other.Summary(),
			FriendsSince: friendships[i].CreatedAt,
		})
	}
	return friends, nil
}

func (s *FriendshipService) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	if a == b {
		return false, nil
	}
	return s.friendships.Exists(ctx, a, b)
}

// Unfriend removes the friendship between a and b. Either user may send a new request afterwards.
func (s *FriendshipService) Unfriend(ctx context.Context, a, b uint) (*models.Friendship, error) {
	if a == b {
		return nil, errors.New(errors.ErrCodeValidation, "cannot unfriend yourself")
	}

	friendship, err := s.friendships.Delete(ctx, a, b)
	if err != nil {
		return nil, err
	}

	logger.Info("Friendship removed", "user_a", a, "user_b", b)
	return friendship, nil
}
