package repositories

import (
	"context"

	"github.com/instashare-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	SetLikeCount(ctx context.Context, id uint, count int64) error
	IncrementCommentCount(ctx context.Context, id uint) error
	DecrementCommentCount(ctx context.Context, id uint) error
	GetVisiblePosts(ctx context.Context, viewerID uint, skip, limit int) ([]models.Post, error)
	GetPostsByOwner(ctx context.Context, ownerID uint, includePrivate bool, skip, limit int) ([]models.Post, error)
	GetTrendingPosts(ctx context.Context, skip, limit int) ([]models.Post, error)
	SearchPosts(ctx context.Context, query string, viewerID uint, followedIDs []uint, skip, limit int) ([]models.Post, error)
	SyncCounters(ctx context.Context) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) WithTx(tx *gorm.DB) PostRepository {
	return &PostgresPostRepository{db: tx}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

// SetLikeCount writes an absolute like count, used by the re-count strategy
func (r *PostgresPostRepository) SetLikeCount(ctx context.Context, id uint, count int64) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("like_count", count).Error
}

func (r *PostgresPostRepository) IncrementCommentCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error
}

func (r *PostgresPostRepository) DecrementCommentCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("comment_count", gorm.Expr("GREATEST(comment_count - 1, 0)")).Error
}

// GetVisiblePosts returns public posts plus the viewer's own, newest first
func (r *PostgresPostRepository) GetVisiblePosts(ctx context.Context, viewerID uint, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("is_private = ? OR owner_id = ?", false, viewerID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) GetPostsByOwner(ctx context.Context, ownerID uint, includePrivate bool, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includePrivate {
		q = q.Where("is_private = ?", false)
	}
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) GetTrendingPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("is_private = ?", false).
		Order("like_count DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// SearchPosts matches captions over the set the viewer may see: public posts,
// the viewer's own, and posts from accounts the viewer follows.
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, query string, viewerID uint, followedIDs []uint, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.WithContext(ctx).Where("caption ILIKE ?", "%"+query+"%")
	if len(followedIDs) > 0 {
		q = q.Where("is_private = ? OR owner_id = ? OR owner_id IN ?", false, viewerID, followedIDs)
	} else {
		q = q.Where("is_private = ? OR owner_id = ?", false, viewerID)
	}
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&posts).Error
	return posts, err
}

// SyncCounters recomputes all denormalized post counters from live child rows.
// Replies carry a parent_id and are excluded from comment_count.
func (r *PostgresPostRepository) SyncCounters(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE posts SET
			like_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id),
			comment_count = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.parent_id IS NULL)
	`).Error
}
