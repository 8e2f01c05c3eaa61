package services

import (
	"context"
	"errors"
	"log"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
	"github.com/instashare-app/backend/internal/storage"
	"gorm.io/gorm"
)

// UserService covers profile reads and edits plus account moderation.
// Follower and following counts are derived from the follow table at read
// time rather than stored on the user row.
type UserService interface {
	GetProfile(ctx context.Context, username string, viewerID uint) (*models.Profile, error)
	GetProfileByID(ctx context.Context, userID, viewerID uint) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest, picture *MediaUpload) (*models.User, error)
	SetUserActive(ctx context.Context, userID uint, active bool) (*models.User, error)
}

type userService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	media   storage.MediaStore
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository, follows repositories.FollowRepository, media storage.MediaStore) UserService {
	return &userService{users: users, follows: follows, media: media}
}

func (s *userService) GetProfile(ctx context.Context, username string, viewerID uint) (*models.Profile, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildProfile(ctx, user, viewerID)
}

func (s *userService) GetProfileByID(ctx context.Context, userID, viewerID uint) (*models.Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildProfile(ctx, user, viewerID)
}

func (s *userService) buildProfile(ctx context.Context, user *models.User, viewerID uint) (*models.Profile, error) {
	followers, err := s.follows.GetFollowersCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.GetFollowingCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
	}
	if viewerID != 0 && viewerID != user.ID {
		followed, err := s.follows.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowedByCurrentUser = followed
	}
	return profile, nil
}

// UpdateProfile applies the provided fields to the caller's own account. A
// new picture replaces the old one; the old file is removed best-effort once
// the row is saved.
func (s *userService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest, picture *MediaUpload) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	oldPicture := ""
	if picture != nil {
		ref, err := s.media.Save(picture.Reader, picture.Filename, "profiles")
		if err != nil {
			return nil, err
		}
		oldPicture = user.ProfilePicture
		user.ProfilePicture = ref
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if picture != nil {
			if derr := s.media.Delete(user.ProfilePicture); derr != nil {
				log.Printf("failed to discard profile picture %s: %v", user.ProfilePicture, derr)
			}
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if oldPicture != "" {
		if err := s.media.Delete(oldPicture); err != nil {
			log.Printf("failed to delete replaced profile picture %s: %v", oldPicture, err)
		}
	}
	return user, nil
}

// SetUserActive flips the moderation switch. Deactivated accounts cannot log
// in; their content stays in place.
func (s *userService) SetUserActive(ctx context.Context, userID uint, active bool) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}
	user.IsActive = active
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
