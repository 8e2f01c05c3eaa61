package services

import (
	"context"
	"errors"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowService manages the directional social graph. Follower/following
// counts are derived by counting edges at read time, not denormalized; profile
// views are cheap to count, per-post lists are not.
type FollowService interface {
	Follow(ctx context.Context, followerID, followingID uint) error
	Unfollow(ctx context.Context, followerID, followingID uint) error
	GetFollowers(ctx context.Context, userID, viewerID uint, skip, limit int) ([]models.Profile, error)
	GetFollowing(ctx context.Context, userID, viewerID uint, skip, limit int) ([]models.Profile, error)
}

type followService struct {
	db            *gorm.DB
	follows       repositories.FollowRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(
	db *gorm.DB,
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) FollowService {
	return &followService{
		db:            db,
		follows:       follows,
		users:         users,
		notifications: notifications,
	}
}

// Follow inserts the edge and notifies the followee, atomically.
func (s *followService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		follows := s.follows.WithTx(tx)

		if _, err := users.GetUserByID(ctx, followerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if _, err := users.GetUserByID(ctx, followingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		following, err := follows.IsFollowing(ctx, followerID, followingID)
		if err != nil {
			return err
		}
		if following {
			return ErrAlreadyFollowed
		}

		edge := &models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := follows.CreateFollow(ctx, edge); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFollowed
			}
			return err
		}

		notif := &models.Notification{
			UserID:   followingID,
			SenderID: followerID,
			Type:     models.NotificationTypeFollow,
		}
		return s.notifications.WithTx(tx).CreateNotification(ctx, notif)
	})
}

// Unfollow removes the edge; no notification is emitted.
func (s *followService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	rows, err := s.follows.DeleteFollow(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (s *followService) GetFollowers(ctx context.Context, userID, viewerID uint, skip, limit int) ([]models.Profile, error) {
	users, err := s.follows.GetFollowers(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, users, viewerID)
}

func (s *followService) GetFollowing(ctx context.Context, userID, viewerID uint, skip, limit int) ([]models.Profile, error) {
	users, err := s.follows.GetFollowing(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, users, viewerID)
}

func (s *followService) annotate(ctx context.Context, users []models.User, viewerID uint) ([]models.Profile, error) {
	profiles := make([]models.Profile, len(users))
	for i, user := range users {
		followers, err := s.follows.GetFollowersCount(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		following, err := s.follows.GetFollowingCount(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		followed := false
		if viewerID != 0 && viewerID != user.ID {
			followed, err = s.follows.IsFollowing(ctx, viewerID, user.ID)
			if err != nil {
				return nil, err
			}
		}
		profiles[i] = models.Profile{
			User:                    user,
			FollowersCount:          followers,
			FollowingCount:          following,
			IsFollowedByCurrentUser: followed,
		}
	}
	return profiles, nil
}
