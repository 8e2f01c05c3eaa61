package repositories

import (
	"context"

	"github.com/instashare-app/backend/internal/models"
	"gorm.io/gorm"
)

// ReelRepository defines the interface for reel data operations
type ReelRepository interface {
	WithTx(tx *gorm.DB) ReelRepository
	CreateReel(ctx context.Context, reel *models.Reel) error
	GetReelByID(ctx context.Context, id uint) (*models.Reel, error)
	GetReelsByIDs(ctx context.Context, ids []uint) ([]models.Reel, error)
	UpdateReel(ctx context.Context, reel *models.Reel) error
	DeleteReel(ctx context.Context, id uint) error
	SetLikeCount(ctx context.Context, id uint, count int64) error
	DecrementLikeCount(ctx context.Context, id uint) error
	IncrementCommentCount(ctx context.Context, id uint) error
	DecrementCommentCount(ctx context.Context, id uint) error
	GetAllReels(ctx context.Context, skip, limit int) ([]models.Reel, error)
	GetReelsByOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.Reel, error)
	GetReelsByOwners(ctx context.Context, ownerIDs []uint, skip, limit int) ([]models.Reel, error)
	SyncCounters(ctx context.Context) error
}

// PostgresReelRepository implements ReelRepository for PostgreSQL
type PostgresReelRepository struct {
	db *gorm.DB
}

// NewPostgresReelRepository creates a new PostgresReelRepository
func NewPostgresReelRepository(db *gorm.DB) *PostgresReelRepository {
	return &PostgresReelRepository{db: db}
}

func (r *PostgresReelRepository) WithTx(tx *gorm.DB) ReelRepository {
	return &PostgresReelRepository{db: tx}
}

func (r *PostgresReelRepository) CreateReel(ctx context.Context, reel *models.Reel) error {
	return r.db.WithContext(ctx).Create(reel).Error
}

func (r *PostgresReelRepository) GetReelByID(ctx context.Context, id uint) (*models.Reel, error) {
	var reel models.Reel
	if err := r.db.WithContext(ctx).First(&reel, id).Error; err != nil {
		return nil, err
	}
	return &reel, nil
}

func (r *PostgresReelRepository) GetReelsByIDs(ctx context.Context, ids []uint) ([]models.Reel, error) {
	var reels []models.Reel
	if len(ids) == 0 {
		return reels, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&reels).Error
	return reels, err
}

func (r *PostgresReelRepository) UpdateReel(ctx context.Context, reel *models.Reel) error {
	return r.db.WithContext(ctx).Save(reel).Error
}

func (r *PostgresReelRepository) DeleteReel(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reel{}, id).Error
}

func (r *PostgresReelRepository) SetLikeCount(ctx context.Context, id uint, count int64) error {
	return r.db.WithContext(ctx).Model(&models.Reel{}).
		Where("id = ?", id).
		Update("like_count", count).Error
}

// DecrementLikeCount drops the counter by one, floored at zero. The reel
// unlike path decrements instead of re-counting; see the engagement service.
func (r *PostgresReelRepository) DecrementLikeCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Reel{}).
		Where("id = ?", id).
		Update("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
}

func (r *PostgresReelRepository) IncrementCommentCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Reel{}).
		Where("id = ?", id).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error
}

func (r *PostgresReelRepository) DecrementCommentCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Reel{}).
		Where("id = ?", id).
		Update("comment_count", gorm.Expr("GREATEST(comment_count - 1, 0)")).Error
}

func (r *PostgresReelRepository) GetAllReels(ctx context.Context, skip, limit int) ([]models.Reel, error) {
	var reels []models.Reel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&reels).Error
	return reels, err
}

func (r *PostgresReelRepository) GetReelsByOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.Reel, error) {
	var reels []models.Reel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&reels).Error
	return reels, err
}

func (r *PostgresReelRepository) GetReelsByOwners(ctx context.Context, ownerIDs []uint, skip, limit int) ([]models.Reel, error) {
	var reels []models.Reel
	if len(ownerIDs) == 0 {
		return reels, nil
	}
	err := r.db.WithContext(ctx).
		Where("owner_id IN ?", ownerIDs).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&reels).Error
	return reels, err
}

// SyncCounters recomputes all denormalized reel counters from live child rows
func (r *PostgresReelRepository) SyncCounters(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE reels SET
			like_count = (SELECT COUNT(*) FROM likes WHERE likes.reel_id = reels.id),
			comment_count = (SELECT COUNT(*) FROM comments WHERE comments.reel_id = reels.id AND comments.parent_id IS NULL)
	`).Error
}
