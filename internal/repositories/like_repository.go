package repositories

import (
	"context"

	"github.com/instashare-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	WithTx(tx *gorm.DB) LikeRepository
	CreateLike(ctx context.Context, like *models.Like) error
	DeletePostLike(ctx context.Context, postID, userID uint) (int64, error)
	DeleteReelLike(ctx context.Context, reelID, userID uint) (int64, error)
	HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error)
	HasUserLikedReel(ctx context.Context, reelID, userID uint) (bool, error)
	CountByPostID(ctx context.Context, postID uint) (int64, error)
	CountByReelID(ctx context.Context, reelID uint) (int64, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	GetLikedReelIDs(ctx context.Context, userID uint, reelIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &PostgresLikeRepository{db: tx}
}

func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *PostgresLikeRepository) DeletePostLike(ctx context.Context, postID, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	return res.RowsAffected, res.Error
}

func (r *PostgresLikeRepository) DeleteReelLike(ctx context.Context, reelID, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("reel_id = ? AND user_id = ?", reelID, userID).
		Delete(&models.Like{})
	return res.RowsAffected, res.Error
}

func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) HasUserLikedReel(ctx context.Context, reelID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("reel_id = ? AND user_id = ?", reelID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) CountByReelID(ctx context.Context, reelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("reel_id = ?", reelID).Count(&count).Error
	return count, err
}

// GetLikedPostIDs answers membership for a page of posts in one query
func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *PostgresLikeRepository) GetLikedReelIDs(ctx context.Context, userID uint, reelIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if len(reelIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND reel_id IN ?", userID, reelIDs).
		Pluck("reel_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
