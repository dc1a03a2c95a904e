package services

import (
	"context"

	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/mroshb/shooty_game/pkg/errors"
	"github.com/mroshb/shooty_game/pkg/logger"
	"gorm.io/gorm"
)

// ScoreInput is one finished round. MoneyEarned is credited to the player when the score
// is created and is not stored on the score.
type ScoreInput struct {
	UserID          uint    `json:"userId"`
	ScoreValue      int     `json:"scoreValue"`
	AverageAccuracy float64 `json:"averageAccuracy"`
	RoundTime       float64 `json:"roundTime"`
	MoneyEarned     int64   `json:"moneyEarned"`
}

func (in ScoreInput) validate() error {
	if in.ScoreValue < 0 || in.RoundTime < 0 {
		return errors.New(errors.ErrCodeValidation, "score and round time cannot be negative")
	}
	if in.AverageAccuracy < 0 || in.AverageAccuracy > 100 {
		return errors.New(errors.ErrCodeValidation, "average accuracy must be between 0 and 100")
	}
	if in.MoneyEarned < 0 {
		return errors.New(errors.ErrCodeValidation, "money earned cannot be negative")
	}
	return nil
}

type ScoreService struct {
	db     *gorm.DB
	scores *repositories.ScoreRepository
	users  *repositories.UserRepository
}

func NewScoreService(db *gorm.DB, scores *repositories.ScoreRepository, users *repositories.UserRepository) *ScoreService {
	return &ScoreService{
		db:     db,
		scores: scores,
		users:  users,
	}
}

// CreateScore records a round and pays the player's earnings in the same transaction
func (s *ScoreService) CreateScore(ctx context.Context, in ScoreInput) (*models.Score, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	score := &models.Score{
		UserID:          in.UserID,
		ScoreValue:      in.ScoreValue,
		AverageAccuracy: in.AverageAccuracy,
		RoundTime:       in.RoundTime,
	}
	err := database.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		exists, err := users.UserExists(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.New(errors.ErrCodeNotFound, "user not found")
		}

		if err := s.scores.WithTx(tx).CreateScore(ctx, score); err != nil {
			return err
		}
		if in.MoneyEarned > 0 {
			if _, err := users.AddMoney(ctx, in.UserID, in.MoneyEarned); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.MoneyEarned > 0 {
		logger.Info("Score earnings credited", "user_id", in.UserID, "score_id", score.ID, "money", in.MoneyEarned)
	}
	return score, nil
}

// UpdateScore corrects the stats of score id. The owner is fixed and no money moves.
func (s *ScoreService) UpdateScore(ctx context.Context, id uint, in ScoreInput) (*models.Score, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	score, err := s.scores.GetScoreByID(ctx, id)
	if err != nil {
		return nil, err
	}

	score.ScoreValue = in.ScoreValue
	score.AverageAccuracy = in.AverageAccuracy
	score.RoundTime = in.RoundTime
	if err := s.scores.UpdateScore(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

func (s *ScoreService) GetScore(ctx context.Context, id uint) (*models.Score, error) {
	return s.scores.GetScoreByID(ctx, id)
}

func (s *ScoreService) ListScores(ctx context.Context, page, pageSize int) ([]models.Score, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.scores.ListScores(ctx, (page-1)*pageSize, pageSize)
}

func (s *ScoreService) ListScoresByUser(ctx context.Context, userID uint) ([]models.Score, error) {
	return s.scores.ListScoresByUser(ctx, userID)
}

func (s *ScoreService) DeleteScore(ctx context.Context, id uint) error {
	return s.scores.DeleteScore(ctx, id)
}

func (s *ScoreService) Leaderboard(ctx context.Context, limit int) ([]repositories.LeaderboardEntry, error) {
	return s.scores.GetLeaderboard(ctx, limit)
}
