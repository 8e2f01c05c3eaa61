package repositories

import (
	"context"
	"time"

	"github.com/instashare-app/backend/internal/models"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations. Active
// means expires_at is still in the future at query time; expired rows may
// exist between sweeps but are never returned by the active queries.
type StoryRepository interface {
	WithTx(tx *gorm.DB) StoryRepository
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id uint) (*models.Story, error)
	DeleteStory(ctx context.Context, id uint) error
	GetActiveByOwner(ctx context.Context, ownerID uint, now time.Time) ([]models.Story, error)
	GetActiveByOwners(ctx context.Context, ownerIDs []uint, now time.Time) ([]models.Story, error)
	GetExpired(ctx context.Context, now time.Time) ([]models.Story, error)
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db *gorm.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

func (r *PostgresStoryRepository) WithTx(tx *gorm.DB) StoryRepository {
	return &PostgresStoryRepository{db: tx}
}

func (r *PostgresStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *PostgresStoryRepository) GetStoryByID(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *PostgresStoryRepository) DeleteStory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Story{}, id).Error
}

func (r *PostgresStoryRepository) GetActiveByOwner(ctx context.Context, ownerID uint, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND expires_at > ?", ownerID, now).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

func (r *PostgresStoryRepository) GetActiveByOwners(ctx context.Context, ownerIDs []uint, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	if len(ownerIDs) == 0 {
		return stories, nil
	}
	err := r.db.WithContext(ctx).
		Where("owner_id IN ? AND expires_at > ?", ownerIDs, now).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

func (r *PostgresStoryRepository) GetExpired(ctx context.Context, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Find(&stories).Error
	return stories, err
}
