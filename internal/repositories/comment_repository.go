package repositories

import (
	"context"

	"github.com/instashare-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByIDs(ctx context.Context, ids []uint) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
	GetReplyIDs(ctx context.Context, parentID uint) ([]uint, error)
	DeleteReplies(ctx context.Context, parentID uint) error
	GetTopLevelByPostID(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error)
	GetTopLevelByReelID(ctx context.Context, reelID uint, skip, limit int) ([]models.Comment, error)
	GetRepliesByParentIDs(ctx context.Context, parentIDs []uint) ([]models.Comment, error)
	GetReplies(ctx context.Context, parentID uint, skip, limit int) ([]models.Comment, int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &PostgresCommentRepository{db: tx}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetCommentsByIDs(ctx context.Context, ids []uint) ([]models.Comment, error) {
	var comments []models.Comment
	if len(ids) == 0 {
		return comments, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

func (r *PostgresCommentRepository) GetReplyIDs(ctx context.Context, parentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("parent_id = ?", parentID).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresCommentRepository) DeleteReplies(ctx context.Context, parentID uint) error {
	return r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) GetTopLevelByPostID(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) GetTopLevelByReelID(ctx context.Context, reelID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("reel_id = ? AND parent_id IS NULL", reelID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&comments).Error
	return comments, err
}

// GetRepliesByParentIDs fetches direct replies for a whole page of comments at once
func (r *PostgresCommentRepository) GetRepliesByParentIDs(ctx context.Context, parentIDs []uint) ([]models.Comment, error) {
	var replies []models.Comment
	if len(parentIDs) == 0 {
		return replies, nil
	}
	err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *PostgresCommentRepository) GetReplies(ctx context.Context, parentID uint, skip, limit int) ([]models.Comment, int64, error) {
	var replies []models.Comment
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("parent_id = ?", parentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Offset(skip).Limit(limit).
		Find(&replies).Error
	return replies, total, err
}
