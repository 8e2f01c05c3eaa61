package services

import (
	"context"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
)

// NotificationService reads the fan-out rows written by engagement and follow
// mutations, and manages their read state. Creation happens inside those
// mutations' transactions; the closed kind set is validated here so a caller
// cannot invent a type. Self-notification suppression is the caller's job.
type NotificationService interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, userID uint, skip, limit int) ([]NotificationView, error)
	MarkRead(ctx context.Context, notificationID, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

// NotificationView is a notification enriched with sender and referenced
// entity snapshots.
type NotificationView struct {
	models.Notification
	Sender  models.UserCompact `json:"sender"`
	Post    *models.Post       `json:"post,omitempty"`
	Reel    *models.Reel       `json:"reel,omitempty"`
	Comment *models.Comment    `json:"comment,omitempty"`
}

type notificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	posts         repositories.PostRepository
	reels         repositories.ReelRepository
	comments      repositories.CommentRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	reels repositories.ReelRepository,
	comments repositories.CommentRepository,
) NotificationService {
	return &notificationService{
		notifications: notifications,
		users:         users,
		posts:         posts,
		reels:         reels,
		comments:      comments,
	}
}

func validNotificationType(t string) bool {
	switch t {
	case models.NotificationTypeLike, models.NotificationTypeComment, models.NotificationTypeFollow:
		return true
	}
	return false
}

func (s *notificationService) Create(ctx context.Context, notification *models.Notification) error {
	if !validNotificationType(notification.Type) {
		return ErrInvalidNotificationType
	}
	return s.notifications.CreateNotification(ctx, notification)
}

// List returns the newest-first page with all referenced entities loaded via
// one batched query per entity kind.
func (s *notificationService) List(ctx context.Context, userID uint, skip, limit int) ([]NotificationView, error) {
	notifications, err := s.notifications.GetByRecipientID(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}

	var senderIDs, postIDs, reelIDs, commentIDs []uint
	seenSender := make(map[uint]bool)
	for _, n := range notifications {
		if !seenSender[n.SenderID] {
			seenSender[n.SenderID] = true
			senderIDs = append(senderIDs, n.SenderID)
		}
		if n.PostID != nil {
			postIDs = append(postIDs, *n.PostID)
		}
		if n.ReelID != nil {
			reelIDs = append(reelIDs, *n.ReelID)
		}
		if n.CommentID != nil {
			commentIDs = append(commentIDs, *n.CommentID)
		}
	}

	senders, err := s.users.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	reels, err := s.reels.GetReelsByIDs(ctx, reelIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByIDs(ctx, commentIDs)
	if err != nil {
		return nil, err
	}

	senderMap := make(map[uint]models.UserCompact, len(senders))
	for i := range senders {
		senderMap[senders[i].ID] = senders[i].ToCompact()
	}
	postMap := make(map[uint]*models.Post, len(posts))
	for i := range posts {
		postMap[posts[i].ID] = &posts[i]
	}
	reelMap := make(map[uint]*models.Reel, len(reels))
	for i := range reels {
		reelMap[reels[i].ID] = &reels[i]
	}
	commentMap := make(map[uint]*models.Comment, len(comments))
	for i := range comments {
		commentMap[comments[i].ID] = &comments[i]
	}

	views := make([]NotificationView, len(notifications))
	for i, n := range notifications {
		view := NotificationView{Notification: n, Sender: senderMap[n.SenderID]}
		if n.PostID != nil {
			view.Post = postMap[*n.PostID]
		}
		if n.ReelID != nil {
			view.Reel = reelMap[*n.ReelID]
		}
		if n.CommentID != nil {
			view.Comment = commentMap[*n.CommentID]
		}
		views[i] = view
	}
	return views, nil
}

// MarkRead fails with NotFound when the notification does not belong to the
// caller; ownership and existence are indistinguishable on purpose.
func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID uint) error {
	rows, err := s.notifications.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.GetUnreadCount(ctx, userID)
}
