package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens gorm over a sqlmock connection so db.Transaction works in
// tests. Callers pair ExpectBegin with ExpectCommit or ExpectRollback.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, smock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, smock
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) WithTx(tx *gorm.DB) repositories.UserRepository { return m }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) SearchUsers(ctx context.Context, query string, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, query, skip, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) GetRecommendedUsers(ctx context.Context, userID uint, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, userID, skip, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

type mockFollowRepo struct{ mock.Mock }

func (m *mockFollowRepo) WithTx(tx *gorm.DB) repositories.FollowRepository { return m }

func (m *mockFollowRepo) CreateFollow(ctx context.Context, follow *models.Follow) error {
	return m.Called(ctx, follow).Error(0)
}

func (m *mockFollowRepo) DeleteFollow(ctx context.Context, followerID, followingID uint) (int64, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFollowRepo) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowRepo) GetFollowers(ctx context.Context, userID uint, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, userID, skip, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockFollowRepo) GetFollowing(ctx context.Context, userID uint, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, userID, skip, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockFollowRepo) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFollowRepo) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFollowRepo) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uint), args.Error(1)
}

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) WithTx(tx *gorm.DB) repositories.PostRepository { return m }

func (m *mockPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepo) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) UpdatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostRepo) SetLikeCount(ctx context.Context, id uint, count int64) error {
	return m.Called(ctx, id, count).Error(0)
}

func (m *mockPostRepo) IncrementCommentCount(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostRepo) DecrementCommentCount(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostRepo) GetVisiblePosts(ctx context.Context, viewerID uint, skip, limit int) ([]models.Post, error) {
	args := m.Called(ctx, viewerID, skip, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) GetPostsByOwner(ctx context.Context, ownerID uint, includePrivate bool, skip, limit int) ([]models.Post, error) {
	args := m.Called(ctx, ownerID, includePrivate, skip, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) GetTrendingPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) SearchPosts(ctx context.Context, query string, viewerID uint, followedIDs []uint, skip, limit int) ([]models.Post, error) {
	args := m.Called(ctx, query, viewerID, followedIDs, skip, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepo) SyncCounters(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockReelRepo struct{ mock.Mock }

func (m *mockReelRepo) WithTx(tx *gorm.DB) repositories.ReelRepository { return m }

func (m *mockReelRepo) CreateReel(ctx context.Context, reel *models.Reel) error {
	return m.Called(ctx, reel).Error(0)
}

func (m *mockReelRepo) GetReelByID(ctx context.Context, id uint) (*models.Reel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reel), args.Error(1)
}

func (m *mockReelRepo) GetReelsByIDs(ctx context.Context, ids []uint) ([]models.Reel, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Reel), args.Error(1)
}

func (m *mockReelRepo) UpdateReel(ctx context.Context, reel *models.Reel) error {
	return m.Called(ctx, reel).Error(0)
}

func (m *mockReelRepo) DeleteReel(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReelRepo) SetLikeCount(ctx context.Context, id uint, count int64) error {
	return m.Called(ctx, id, count).Error(0)
}

func (m *mockReelRepo) DecrementLikeCount(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReelRepo) IncrementCommentCount(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReelRepo) DecrementCommentCount(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReelRepo) GetAllReels(ctx context.Context, skip, limit int) ([]models.Reel, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]models.Reel), args.Error(1)
}

func (m *mockReelRepo) GetReelsByOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.Reel, error) {
	args := m.Called(ctx, ownerID, skip, limit)
	return args.Get(0).([]models.Reel), args.Error(1)
}

func (m *mockReelRepo) GetReelsByOwners(ctx context.Context, ownerIDs []uint, skip, limit int) ([]models.Reel, error) {
	args := m.Called(ctx, ownerIDs, skip, limit)
	return args.Get(0).([]models.Reel), args.Error(1)
}

func (m *mockReelRepo) SyncCounters(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockLikeRepo struct{ mock.Mock }

func (m *mockLikeRepo) WithTx(tx *gorm.DB) repositories.LikeRepository { return m }

func (m *mockLikeRepo) CreateLike(ctx context.Context, like *models.Like) error {
	return m.Called(ctx, like).Error(0)
}

func (m *mockLikeRepo) DeletePostLike(ctx context.Context, postID, userID uint) (int64, error) {
	args := m.Called(ctx, postID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepo) DeleteReelLike(ctx context.Context, reelID, userID uint) (int64, error) {
	args := m.Called(ctx, reelID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepo) HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) HasUserLikedReel(ctx context.Context, reelID, userID uint) (bool, error) {
	args := m.Called(ctx, reelID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepo) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepo) CountByReelID(ctx context.Context, reelID uint) (int64, error) {
	args := m.Called(ctx, reelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepo) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	args := m.Called(ctx, userID, postIDs)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *mockLikeRepo) GetLikedReelIDs(ctx context.Context, userID uint, reelIDs []uint) (map[uint]bool, error) {
	args := m.Called(ctx, userID, reelIDs)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) WithTx(tx *gorm.DB) repositories.CommentRepository { return m }

func (m *mockCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockCommentRepo) GetCommentsByIDs(ctx context.Context, ids []uint) ([]models.Comment, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockCommentRepo) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) DeleteComment(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCommentRepo) GetReplyIDs(ctx context.Context, parentID uint) ([]uint, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockCommentRepo) DeleteReplies(ctx context.Context, parentID uint) error {
	return m.Called(ctx, parentID).Error(0)
}

func (m *mockCommentRepo) GetTopLevelByPostID(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error) {
	args := m.Called(ctx, postID, skip, limit)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockCommentRepo) GetTopLevelByReelID(ctx context.Context, reelID uint, skip, limit int) ([]models.Comment, error) {
	args := m.Called(ctx, reelID, skip, limit)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockCommentRepo) GetRepliesByParentIDs(ctx context.Context, parentIDs []uint) ([]models.Comment, error) {
	args := m.Called(ctx, parentIDs)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockCommentRepo) GetReplies(ctx context.Context, parentID uint, skip, limit int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, parentID, skip, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) WithTx(tx *gorm.DB) repositories.NotificationRepository { return m }

func (m *mockNotificationRepo) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepo) GetByRecipientID(ctx context.Context, recipientID uint, skip, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID, skip, limit)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, notificationID, recipientID uint) (int64, error) {
	args := m.Called(ctx, notificationID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) DeleteByCommentIDs(ctx context.Context, commentIDs []uint) error {
	return m.Called(ctx, commentIDs).Error(0)
}

type mockStoryRepo struct{ mock.Mock }

func (m *mockStoryRepo) WithTx(tx *gorm.DB) repositories.StoryRepository { return m }

func (m *mockStoryRepo) CreateStory(ctx context.Context, story *models.Story) error {
	return m.Called(ctx, story).Error(0)
}

func (m *mockStoryRepo) GetStoryByID(ctx context.Context, id uint) (*models.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *mockStoryRepo) DeleteStory(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStoryRepo) GetActiveByOwner(ctx context.Context, ownerID uint, now time.Time) ([]models.Story, error) {
	args := m.Called(ctx, ownerID, now)
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *mockStoryRepo) GetActiveByOwners(ctx context.Context, ownerIDs []uint, now time.Time) ([]models.Story, error) {
	args := m.Called(ctx, ownerIDs, now)
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *mockStoryRepo) GetExpired(ctx context.Context, now time.Time) ([]models.Story, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]models.Story), args.Error(1)
}

type mockMediaStore struct{ mock.Mock }

func (m *mockMediaStore) Save(r io.Reader, originalName, subfolder string) (string, error) {
	args := m.Called(r, originalName, subfolder)
	return args.String(0), args.Error(1)
}

func (m *mockMediaStore) Delete(ref string) error {
	return m.Called(ref).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendPasswordReset(to, resetURL string, expiryMinutes int) error {
	return m.Called(to, resetURL, expiryMinutes).Error(0)
}
