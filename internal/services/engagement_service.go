package services

import (
	"context"
	"errors"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// EngagementService owns the like/comment mutations and the denormalized
// counters they maintain. Every mutation runs as one transaction: the
// engagement row, the counter write, and any notification commit together or
// not at all.
type EngagementService interface {
	LikePost(ctx context.Context, actorID, postID uint) error
	UnlikePost(ctx context.Context, actorID, postID uint) error
	LikeReel(ctx context.Context, actorID, reelID uint) error
	UnlikeReel(ctx context.Context, actorID, reelID uint) error

	CreatePostComment(ctx context.Context, actorID, postID uint, content string, parentID *uint) (*models.Comment, error)
	CreateReelComment(ctx context.Context, actorID, reelID uint, content string, parentID *uint) (*models.Comment, error)
	UpdateComment(ctx context.Context, actorID uint, isAdmin bool, commentID uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, actorID uint, isAdmin bool, commentID uint) error

	ListPostComments(ctx context.Context, postID uint, skip, limit int) ([]CommentView, error)
	ListReelComments(ctx context.Context, reelID uint, skip, limit int) ([]CommentView, error)
	ListReplies(ctx context.Context, commentID uint, skip, limit int) ([]CommentView, int64, error)

	RecountEngagement(ctx context.Context) error
}

// CommentView is a comment enriched with its author and, for top-level
// comments, one level of direct replies.
type CommentView struct {
	models.Comment
	User    models.UserCompact `json:"user"`
	Replies []CommentView      `json:"replies,omitempty"`
}

type engagementService struct {
	db            *gorm.DB
	posts         repositories.PostRepository
	reels         repositories.ReelRepository
	comments      repositories.CommentRepository
	likes         repositories.LikeRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	db *gorm.DB,
	posts repositories.PostRepository,
	reels repositories.ReelRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) EngagementService {
	return &engagementService{
		db:            db,
		posts:         posts,
		reels:         reels,
		comments:      comments,
		likes:         likes,
		users:         users,
		notifications: notifications,
	}
}

// LikePost inserts the like, re-counts the post's like rows into like_count,
// and notifies the owner unless the actor is the owner.
func (s *engagementService) LikePost(ctx context.Context, actorID, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		likes := s.likes.WithTx(tx)

		post, err := posts.GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		liked, err := likes.HasUserLikedPost(ctx, postID, actorID)
		if err != nil {
			return err
		}
		if liked {
			return ErrAlreadyLiked
		}

		like := &models.Like{UserID: actorID, PostID: &postID}
		if err := likes.CreateLike(ctx, like); err != nil {
			// the unique index backstops the check above under concurrency
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return err
		}

		count, err := likes.CountByPostID(ctx, postID)
		if err != nil {
			return err
		}
		if err := posts.SetLikeCount(ctx, postID, count); err != nil {
			return err
		}

		if post.OwnerID != actorID {
			notif := &models.Notification{
				UserID:   post.OwnerID,
				SenderID: actorID,
				Type:     models.NotificationTypeLike,
				PostID:   &postID,
			}
			if err := s.notifications.WithTx(tx).CreateNotification(ctx, notif); err != nil {
				return err
			}
		}
		return nil
	})
}

// UnlikePost deletes the like and re-counts the post's like rows.
func (s *engagementService) UnlikePost(ctx context.Context, actorID, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		likes := s.likes.WithTx(tx)

		rows, err := likes.DeletePostLike(ctx, postID, actorID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrLikeNotFound
		}

		count, err := likes.CountByPostID(ctx, postID)
		if err != nil {
			return err
		}
		return posts.SetLikeCount(ctx, postID, count)
	})
}

func (s *engagementService) LikeReel(ctx context.Context, actorID, reelID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reels := s.reels.WithTx(tx)
		likes := s.likes.WithTx(tx)

		reel, err := reels.GetReelByID(ctx, reelID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReelNotFound
			}
			return err
		}

		liked, err := likes.HasUserLikedReel(ctx, reelID, actorID)
		if err != nil {
			return err
		}
		if liked {
			return ErrAlreadyLiked
		}

		like := &models.Like{UserID: actorID, ReelID: &reelID}
		if err := likes.CreateLike(ctx, like); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return err
		}

		count, err := likes.CountByReelID(ctx, reelID)
		if err != nil {
			return err
		}
		if err := reels.SetLikeCount(ctx, reelID, count); err != nil {
			return err
		}

		if reel.OwnerID != actorID {
			notif := &models.Notification{
				UserID:   reel.OwnerID,
				SenderID: actorID,
				Type:     models.NotificationTypeLike,
				ReelID:   &reelID,
			}
			if err := s.notifications.WithTx(tx).CreateNotification(ctx, notif); err != nil {
				return err
			}
		}
		return nil
	})
}

// UnlikeReel deletes the like and decrements like_count by one. Unlike the
// post path this does not re-count; the recount job heals any drift this
// accumulates under concurrent unlikes.
func (s *engagementService) UnlikeReel(ctx context.Context, actorID, reelID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes := s.likes.WithTx(tx)

		rows, err := likes.DeleteReelLike(ctx, reelID, actorID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrLikeNotFound
		}
		return s.reels.WithTx(tx).DecrementLikeCount(ctx, reelID)
	})
}

// CreatePostComment inserts a comment or reply on a post. Top-level comments
// bump the post's comment_count; replies do not. The owner is notified unless
// the actor owns the post; for replies the parent author is additionally
// notified when distinct from both the actor and the owner.
func (s *engagementService) CreatePostComment(ctx context.Context, actorID, postID uint, content string, parentID *uint) (*models.Comment, error) {
	var created *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		comments := s.comments.WithTx(tx)

		post, err := posts.GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var parent *models.Comment
		if parentID != nil {
			parent, err = comments.GetCommentByID(ctx, *parentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentNotFound
				}
				return err
			}
			if parent.PostID == nil || *parent.PostID != postID {
				return ErrParentNotFound
			}
		}

		comment := &models.Comment{
			Content:  content,
			UserID:   actorID,
			PostID:   &postID,
			ParentID: parentID,
		}
		if err := comments.CreateComment(ctx, comment); err != nil {
			return err
		}

		if parentID == nil {
			if err := posts.IncrementCommentCount(ctx, postID); err != nil {
				return err
			}
		}

		notifications := s.notifications.WithTx(tx)
		if post.OwnerID != actorID {
			notif := &models.Notification{
				UserID:    post.OwnerID,
				SenderID:  actorID,
				Type:      models.NotificationTypeComment,
				PostID:    &postID,
				CommentID: &comment.ID,
			}
			if err := notifications.CreateNotification(ctx, notif); err != nil {
				return err
			}
		}
		if parent != nil && parent.UserID != actorID && parent.UserID != post.OwnerID {
			notif := &models.Notification{
				UserID:    parent.UserID,
				SenderID:  actorID,
				Type:      models.NotificationTypeComment,
				PostID:    &postID,
				CommentID: &comment.ID,
			}
			if err := notifications.CreateNotification(ctx, notif); err != nil {
				return err
			}
		}

		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *engagementService) CreateReelComment(ctx context.Context, actorID, reelID uint, content string, parentID *uint) (*models.Comment, error) {
	var created *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reels := s.reels.WithTx(tx)
		comments := s.comments.WithTx(tx)

		reel, err := reels.GetReelByID(ctx, reelID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReelNotFound
			}
			return err
		}

		var parent *models.Comment
		if parentID != nil {
			parent, err = comments.GetCommentByID(ctx, *parentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentNotFound
				}
				return err
			}
			if parent.ReelID == nil || *parent.ReelID != reelID {
				return ErrParentNotFound
			}
		}

		comment := &models.Comment{
			Content:  content,
			UserID:   actorID,
			ReelID:   &reelID,
			ParentID: parentID,
		}
		if err := comments.CreateComment(ctx, comment); err != nil {
			return err
		}

		if parentID == nil {
			if err := reels.IncrementCommentCount(ctx, reelID); err != nil {
				return err
			}
		}

		notifications := s.notifications.WithTx(tx)
		if reel.OwnerID != actorID {
			notif := &models.Notification{
				UserID:    reel.OwnerID,
				SenderID:  actorID,
				Type:      models.NotificationTypeComment,
				ReelID:    &reelID,
				CommentID: &comment.ID,
			}
			if err := notifications.CreateNotification(ctx, notif); err != nil {
				return err
			}
		}
		if parent != nil && parent.UserID != actorID && parent.UserID != reel.OwnerID {
			notif := &models.Notification{
				UserID:    parent.UserID,
				SenderID:  actorID,
				Type:      models.NotificationTypeComment,
				ReelID:    &reelID,
				CommentID: &comment.ID,
			}
			if err := notifications.CreateNotification(ctx, notif); err != nil {
				return err
			}
		}

		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateComment edits comment content; the editor is recorded. Admins may
// edit any comment.
func (s *engagementService) UpdateComment(ctx context.Context, actorID uint, isAdmin bool, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	comment.Content = content
	comment.EditorID = &actorID
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment, its direct replies, and every
// notification referencing any of them. A top-level delete decrements the
// target's comment_count by exactly one; a reply delete leaves it untouched.
func (s *engagementService) DeleteComment(ctx context.Context, actorID uint, isAdmin bool, commentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := s.comments.WithTx(tx)

		comment, err := comments.GetCommentByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if comment.UserID != actorID && !isAdmin {
			return ErrForbidden
		}

		if comment.ParentID == nil {
			switch {
			case comment.PostID != nil:
				if err := s.posts.WithTx(tx).DecrementCommentCount(ctx, *comment.PostID); err != nil {
					return err
				}
			case comment.ReelID != nil:
				if err := s.reels.WithTx(tx).DecrementCommentCount(ctx, *comment.ReelID); err != nil {
					return err
				}
			}
		}

		replyIDs, err := comments.GetReplyIDs(ctx, commentID)
		if err != nil {
			return err
		}
		if err := s.notifications.WithTx(tx).DeleteByCommentIDs(ctx, append(replyIDs, commentID)); err != nil {
			return err
		}
		if err := comments.DeleteReplies(ctx, commentID); err != nil {
			return err
		}
		return comments.DeleteComment(ctx, commentID)
	})
}

func (s *engagementService) ListPostComments(ctx context.Context, postID uint, skip, limit int) ([]CommentView, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	top, err := s.comments.GetTopLevelByPostID(ctx, postID, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.buildThread(ctx, top)
}

func (s *engagementService) ListReelComments(ctx context.Context, reelID uint, skip, limit int) ([]CommentView, error) {
	if _, err := s.reels.GetReelByID(ctx, reelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReelNotFound
		}
		return nil, err
	}
	top, err := s.comments.GetTopLevelByReelID(ctx, reelID, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.buildThread(ctx, top)
}

func (s *engagementService) ListReplies(ctx context.Context, commentID uint, skip, limit int) ([]CommentView, int64, error) {
	if _, err := s.comments.GetCommentByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCommentNotFound
		}
		return nil, 0, err
	}
	replies, total, err := s.comments.GetReplies(ctx, commentID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	userMap, err := s.userMapFor(ctx, replies, nil)
	if err != nil {
		return nil, 0, err
	}
	views := make([]CommentView, len(replies))
	for i, reply := range replies {
		views[i] = CommentView{Comment: reply, User: userMap[reply.UserID]}
	}
	return views, total, nil
}

// buildThread assembles one level of nesting: the given top-level page plus
// all direct replies, fetched in one batched query each.
func (s *engagementService) buildThread(ctx context.Context, top []models.Comment) ([]CommentView, error) {
	parentIDs := make([]uint, len(top))
	for i, c := range top {
		parentIDs[i] = c.ID
	}
	replies, err := s.comments.GetRepliesByParentIDs(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	userMap, err := s.userMapFor(ctx, top, replies)
	if err != nil {
		return nil, err
	}

	repliesByParent := make(map[uint][]CommentView)
	for _, reply := range replies {
		view := CommentView{Comment: reply, User: userMap[reply.UserID]}
		repliesByParent[*reply.ParentID] = append(repliesByParent[*reply.ParentID], view)
	}

	views := make([]CommentView, len(top))
	for i, c := range top {
		views[i] = CommentView{
			Comment: c,
			User:    userMap[c.UserID],
			Replies: repliesByParent[c.ID],
		}
	}
	return views, nil
}

func (s *engagementService) userMapFor(ctx context.Context, a, b []models.Comment) (map[uint]models.UserCompact, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, c := range append(append([]models.Comment{}, a...), b...) {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		userMap[users[i].ID] = users[i].ToCompact()
	}
	return userMap, nil
}

// RecountEngagement recomputes every post and reel counter from live child
// rows, healing drift left by the decrement paths.
func (s *engagementService) RecountEngagement(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).SyncCounters(ctx); err != nil {
			return err
		}
		return s.reels.WithTx(tx).SyncCounters(ctx)
	})
}
