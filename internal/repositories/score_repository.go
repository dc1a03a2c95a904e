package repositories

import (
	"context"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
	"gorm.io/gorm"
)

type ScoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ScoreRepository) WithTx(tx *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: tx}
}

// LeaderboardEntry is a user's best score
type LeaderboardEntry struct {
	UserID    uint   `json:"userId"`
	UserName  string `json:"userName"`
	PlayerTag string `json:"playerTag"`
	BestScore int    `json:"bestScore"`
}

func (r *ScoreRepository) CreateScore(ctx context.Context, score *models.Score) error {
	err := r.db.WithContext(ctx).Omit("User").Create(score).Error
	return translateWriteError(err, "score already exists", "failed to create score")
}

func (r *ScoreRepository) GetScoreByID(ctx context.Context, id uint) (*models.Score, error) {
	var score models.Score
	if err := r.db.WithContext(ctx).First(&score, id).Error; err != nil {
		return nil, translateReadError(err, "score not found", "failed to get score")
	}
	return &score, nil
}

func (r *ScoreRepository) ListScores(ctx context.Context, offset, limit int) ([]models.Score, error) {
	scores := []models.Score{}
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&scores).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list scores")
	}
	return scores, nil
}

// ListScoresByUser lists a user's scores, newest first
func (r *ScoreRepository) ListScoresByUser(ctx context.Context, userID uint) ([]models.Score, error) {
	scores := []models.Score{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&scores).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list scores")
	}
	return scores, nil
}

// UpdateScore saves the round stats of a loaded score. The owner and creation time are kept.
func (r *ScoreRepository) UpdateScore(ctx context.Context, score *models.Score) error {
	err := r.db.WithContext(ctx).Model(score).
		Select("score_value", "average_accuracy", "round_time").
		Updates(score).Error
	return translateWriteError(err, "score already exists", "failed to update score")
}

func (r *ScoreRepository) DeleteScore(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Score{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete score")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "score not found")
	}
	return nil
}

// GetLeaderboard returns the best score of each user, highest first
func (r *ScoreRepository) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	entries := []LeaderboardEntry{}
	err := r.db.WithContext(ctx).
		Table("scores").
		Select("users.id AS user_id, users.user_name, users.player_tag, MAX(scores.score_value) AS best_score").
		Joins("JOIN users ON users.id = scores.user_id AND users.deleted_at IS NULL").
		Group("users.id, users.user_name, users.player_tag").
		Order("best_score DESC, users.id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get leaderboard")
	}

	return entries, nil
}
