package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/instashare-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engagementFixture struct {
	svc           EngagementService
	smock         sqlmock.Sqlmock
	posts         *mockPostRepo
	reels         *mockReelRepo
	comments      *mockCommentRepo
	likes         *mockLikeRepo
	users         *mockUserRepo
	notifications *mockNotificationRepo
}

func newEngagementFixture(t *testing.T) *engagementFixture {
	db, smock := newTestDB(t)
	f := &engagementFixture{
		smock:         smock,
		posts:         new(mockPostRepo),
		reels:         new(mockReelRepo),
		comments:      new(mockCommentRepo),
		likes:         new(mockLikeRepo),
		users:         new(mockUserRepo),
		notifications: new(mockNotificationRepo),
	}
	f.svc = NewEngagementService(db, f.posts, f.reels, f.comments, f.likes, f.users, f.notifications)
	return f
}

func TestLikePostRecountsAndNotifiesOwner(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 2}, nil)
	f.likes.On("HasUserLikedPost", mock.Anything, postID, uint(1)).Return(false, nil)
	f.likes.On("CreateLike", mock.Anything, mock.MatchedBy(func(l *models.Like) bool {
		return l.UserID == 1 && l.PostID != nil && *l.PostID == postID
	})).Return(nil)
	f.likes.On("CountByPostID", mock.Anything, postID).Return(int64(7), nil)
	f.posts.On("SetLikeCount", mock.Anything, postID, int64(7)).Return(nil)
	f.notifications.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 2 && n.SenderID == 1 && n.Type == models.NotificationTypeLike
	})).Return(nil)
	f.smock.ExpectCommit()

	err := f.svc.LikePost(context.Background(), 1, postID)
	require.NoError(t, err)
	f.posts.AssertExpectations(t)
	f.likes.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}

func TestLikePostOwnLikeSkipsNotification(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 1}, nil)
	f.likes.On("HasUserLikedPost", mock.Anything, postID, uint(1)).Return(false, nil)
	f.likes.On("CreateLike", mock.Anything, mock.Anything).Return(nil)
	f.likes.On("CountByPostID", mock.Anything, postID).Return(int64(1), nil)
	f.posts.On("SetLikeCount", mock.Anything, postID, int64(1)).Return(nil)
	f.smock.ExpectCommit()

	err := f.svc.LikePost(context.Background(), 1, postID)
	require.NoError(t, err)
	f.notifications.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
}

func TestLikePostAlreadyLiked(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 2}, nil)
	f.likes.On("HasUserLikedPost", mock.Anything, postID, uint(1)).Return(true, nil)
	f.smock.ExpectRollback()

	err := f.svc.LikePost(context.Background(), 1, postID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLikePostDuplicateInsertBecomesConflict(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 2}, nil)
	f.likes.On("HasUserLikedPost", mock.Anything, postID, uint(1)).Return(false, nil)
	f.likes.On("CreateLike", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
	f.smock.ExpectRollback()

	err := f.svc.LikePost(context.Background(), 1, postID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestLikePostMissingPost(t *testing.T) {
	f := newEngagementFixture(t)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
	f.smock.ExpectRollback()

	err := f.svc.LikePost(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUnlikePostRecounts(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)

	f.smock.ExpectBegin()
	f.likes.On("DeletePostLike", mock.Anything, postID, uint(1)).Return(int64(1), nil)
	f.likes.On("CountByPostID", mock.Anything, postID).Return(int64(4), nil)
	f.posts.On("SetLikeCount", mock.Anything, postID, int64(4)).Return(nil)
	f.smock.ExpectCommit()

	err := f.svc.UnlikePost(context.Background(), 1, postID)
	require.NoError(t, err)
	f.posts.AssertExpectations(t)
}

func TestUnlikePostWithoutLike(t *testing.T) {
	f := newEngagementFixture(t)

	f.smock.ExpectBegin()
	f.likes.On("DeletePostLike", mock.Anything, uint(10), uint(1)).Return(int64(0), nil)
	f.smock.ExpectRollback()

	err := f.svc.UnlikePost(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrLikeNotFound)
}

func TestUnlikeReelDecrementsInsteadOfRecounting(t *testing.T) {
	f := newEngagementFixture(t)
	reelID := uint(5)

	f.smock.ExpectBegin()
	f.likes.On("DeleteReelLike", mock.Anything, reelID, uint(1)).Return(int64(1), nil)
	f.reels.On("DecrementLikeCount", mock.Anything, reelID).Return(nil)
	f.smock.ExpectCommit()

	err := f.svc.UnlikeReel(context.Background(), 1, reelID)
	require.NoError(t, err)
	f.reels.AssertNotCalled(t, "SetLikeCount", mock.Anything, mock.Anything, mock.Anything)
	f.likes.AssertNotCalled(t, "CountByReelID", mock.Anything, mock.Anything)
}

func TestCreatePostCommentTopLevelBumpsCounter(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 2}, nil)
	f.comments.On("CreateComment", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.UserID == 1 && c.PostID != nil && *c.PostID == postID && c.ParentID == nil
	})).Return(nil)
	f.posts.On("IncrementCommentCount", mock.Anything, postID).Return(nil)
	f.notifications.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 2 && n.Type == models.NotificationTypeComment
	})).Return(nil)
	f.smock.ExpectCommit()

	comment, err := f.svc.CreatePostComment(context.Background(), 1, postID, "nice", nil)
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)
	f.posts.AssertExpectations(t)
}

func TestCreatePostCommentReplySkipsCounter(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)
	parentID := uint(50)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 2}, nil)
	f.comments.On("GetCommentByID", mock.Anything, parentID).
		Return(&models.Comment{ID: parentID, UserID: 3, PostID: &postID}, nil)
	f.comments.On("CreateComment", mock.Anything, mock.Anything).Return(nil)
	// owner and parent author both get notified, actor is neither
	f.notifications.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 2
	})).Return(nil).Once()
	f.notifications.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 3
	})).Return(nil).Once()
	f.smock.ExpectCommit()

	_, err := f.svc.CreatePostComment(context.Background(), 1, postID, "reply", &parentID)
	require.NoError(t, err)
	f.posts.AssertNotCalled(t, "IncrementCommentCount", mock.Anything, mock.Anything)
	f.notifications.AssertExpectations(t)
}

func TestCreatePostCommentReplyToOwnerNotifiesOnce(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)
	parentID := uint(50)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 2}, nil)
	f.comments.On("GetCommentByID", mock.Anything, parentID).
		Return(&models.Comment{ID: parentID, UserID: 2, PostID: &postID}, nil)
	f.comments.On("CreateComment", mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
	f.smock.ExpectCommit()

	_, err := f.svc.CreatePostComment(context.Background(), 1, postID, "reply", &parentID)
	require.NoError(t, err)
	f.notifications.AssertNumberOfCalls(t, "CreateNotification", 1)
}

func TestCreatePostCommentParentOnOtherTarget(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)
	otherPostID := uint(11)
	parentID := uint(50)

	f.smock.ExpectBegin()
	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, OwnerID: 2}, nil)
	f.comments.On("GetCommentByID", mock.Anything, parentID).
		Return(&models.Comment{ID: parentID, UserID: 3, PostID: &otherPostID}, nil)
	f.smock.ExpectRollback()

	_, err := f.svc.CreatePostComment(context.Background(), 1, postID, "reply", &parentID)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCreateReelCommentTopLevelBumpsCounter(t *testing.T) {
	f := newEngagementFixture(t)
	reelID := uint(5)

	f.smock.ExpectBegin()
	f.reels.On("GetReelByID", mock.Anything, reelID).Return(&models.Reel{ID: reelID, OwnerID: 2}, nil)
	f.comments.On("CreateComment", mock.Anything, mock.Anything).Return(nil)
	f.reels.On("IncrementCommentCount", mock.Anything, reelID).Return(nil)
	f.notifications.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	f.smock.ExpectCommit()

	_, err := f.svc.CreateReelComment(context.Background(), 1, reelID, "nice", nil)
	require.NoError(t, err)
	f.reels.AssertExpectations(t)
}

func TestUpdateCommentRecordsEditor(t *testing.T) {
	f := newEngagementFixture(t)
	commentID := uint(50)

	f.comments.On("GetCommentByID", mock.Anything, commentID).
		Return(&models.Comment{ID: commentID, UserID: 1, Content: "old"}, nil)
	f.comments.On("UpdateComment", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.Content == "new" && c.EditorID != nil && *c.EditorID == 1
	})).Return(nil)

	comment, err := f.svc.UpdateComment(context.Background(), 1, false, commentID, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", comment.Content)
}

func TestUpdateCommentForbiddenForStranger(t *testing.T) {
	f := newEngagementFixture(t)

	f.comments.On("GetCommentByID", mock.Anything, uint(50)).
		Return(&models.Comment{ID: 50, UserID: 2}, nil)

	_, err := f.svc.UpdateComment(context.Background(), 1, false, 50, "new")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateCommentAdminOverride(t *testing.T) {
	f := newEngagementFixture(t)

	f.comments.On("GetCommentByID", mock.Anything, uint(50)).
		Return(&models.Comment{ID: 50, UserID: 2}, nil)
	f.comments.On("UpdateComment", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.UpdateComment(context.Background(), 1, true, 50, "moderated")
	require.NoError(t, err)
}

func TestDeleteTopLevelCommentCascades(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)
	commentID := uint(50)

	f.smock.ExpectBegin()
	f.comments.On("GetCommentByID", mock.Anything, commentID).
		Return(&models.Comment{ID: commentID, UserID: 1, PostID: &postID}, nil)
	f.posts.On("DecrementCommentCount", mock.Anything, postID).Return(nil)
	f.comments.On("GetReplyIDs", mock.Anything, commentID).Return([]uint{51, 52}, nil)
	f.notifications.On("DeleteByCommentIDs", mock.Anything, []uint{51, 52, commentID}).Return(nil)
	f.comments.On("DeleteReplies", mock.Anything, commentID).Return(nil)
	f.comments.On("DeleteComment", mock.Anything, commentID).Return(nil)
	f.smock.ExpectCommit()

	err := f.svc.DeleteComment(context.Background(), 1, false, commentID)
	require.NoError(t, err)
	f.comments.AssertExpectations(t)
	f.notifications.AssertExpectations(t)
}

func TestDeleteReplyLeavesCounterAlone(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)
	parentID := uint(40)
	commentID := uint(50)

	f.smock.ExpectBegin()
	f.comments.On("GetCommentByID", mock.Anything, commentID).
		Return(&models.Comment{ID: commentID, UserID: 1, PostID: &postID, ParentID: &parentID}, nil)
	f.comments.On("GetReplyIDs", mock.Anything, commentID).Return([]uint{}, nil)
	f.notifications.On("DeleteByCommentIDs", mock.Anything, []uint{commentID}).Return(nil)
	f.comments.On("DeleteReplies", mock.Anything, commentID).Return(nil)
	f.comments.On("DeleteComment", mock.Anything, commentID).Return(nil)
	f.smock.ExpectCommit()

	err := f.svc.DeleteComment(context.Background(), 1, false, commentID)
	require.NoError(t, err)
	f.posts.AssertNotCalled(t, "DecrementCommentCount", mock.Anything, mock.Anything)
}

func TestListPostCommentsBuildsThread(t *testing.T) {
	f := newEngagementFixture(t)
	postID := uint(10)
	topID := uint(50)

	f.posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID}, nil)
	f.comments.On("GetTopLevelByPostID", mock.Anything, postID, 0, 20).
		Return([]models.Comment{{ID: topID, UserID: 1, PostID: &postID}}, nil)
	f.comments.On("GetRepliesByParentIDs", mock.Anything, []uint{topID}).
		Return([]models.Comment{{ID: 51, UserID: 2, PostID: &postID, ParentID: &topID}}, nil)
	f.users.On("GetUsersByIDs", mock.Anything, mock.Anything).
		Return([]models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}, nil)

	views, err := f.svc.ListPostComments(context.Background(), postID, 0, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].User.Username)
	require.Len(t, views[0].Replies, 1)
	assert.Equal(t, "bob", views[0].Replies[0].User.Username)
}

func TestRecountEngagementSyncsBothCounters(t *testing.T) {
	f := newEngagementFixture(t)

	f.smock.ExpectBegin()
	f.posts.On("SyncCounters", mock.Anything).Return(nil)
	f.reels.On("SyncCounters", mock.Anything).Return(nil)
	f.smock.ExpectCommit()

	err := f.svc.RecountEngagement(context.Background())
	require.NoError(t, err)
	f.posts.AssertExpectations(t)
	f.reels.AssertExpectations(t)
}
