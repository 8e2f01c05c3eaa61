package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
	"github.com/instashare-app/backend/internal/storage"
	"gorm.io/gorm"
)

// StoryService owns ephemeral stories. Expiry is a pure function of time: the
// active queries filter on expires_at, so an expired story never surfaces even
// before the sweep physically removes it.
type StoryService interface {
	CreateStory(ctx context.Context, ownerID uint, media *MediaUpload) (*models.Story, error)
	GetUserStories(ctx context.Context, ownerID uint) ([]models.Story, error)
	GetFollowingStories(ctx context.Context, callerID uint) ([]models.Story, error)
	DeleteStory(ctx context.Context, actorID uint, isAdmin bool, storyID uint) error
	CleanupExpiredStories(ctx context.Context) (int, error)
}

type storyService struct {
	stories repositories.StoryRepository
	follows repositories.FollowRepository
	media   storage.MediaStore
	now     func() time.Time
}

// NewStoryService creates a new StoryService
func NewStoryService(stories repositories.StoryRepository, follows repositories.FollowRepository, media storage.MediaStore) StoryService {
	return &storyService{stories: stories, follows: follows, media: media, now: time.Now}
}

func (s *storyService) CreateStory(ctx context.Context, ownerID uint, media *MediaUpload) (*models.Story, error) {
	if media == nil {
		return nil, ErrInvalidArgument
	}
	mediaURL, err := s.media.Save(media.Reader, media.Filename, "stories")
	if err != nil {
		return nil, err
	}

	now := s.now()
	story := &models.Story{
		MediaURL:  mediaURL,
		OwnerID:   ownerID,
		CreatedAt: now,
		ExpiresAt: now.Add(models.StoryTTL),
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		if derr := s.media.Delete(mediaURL); derr != nil {
			log.Printf("failed to delete orphaned story media %s: %v", mediaURL, derr)
		}
		return nil, err
	}
	return story, nil
}

func (s *storyService) GetUserStories(ctx context.Context, ownerID uint) ([]models.Story, error) {
	return s.stories.GetActiveByOwner(ctx, ownerID, s.now())
}

func (s *storyService) GetFollowingStories(ctx context.Context, callerID uint) ([]models.Story, error) {
	followedIDs, err := s.follows.GetFollowingIDs(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.stories.GetActiveByOwners(ctx, followedIDs, s.now())
}

func (s *storyService) DeleteStory(ctx context.Context, actorID uint, isAdmin bool, storyID uint) error {
	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}
	if story.OwnerID != actorID && !isAdmin {
		return ErrForbidden
	}
	if err := s.stories.DeleteStory(ctx, storyID); err != nil {
		return err
	}
	if err := s.media.Delete(story.MediaURL); err != nil {
		log.Printf("failed to delete story media %s: %v", story.MediaURL, err)
	}
	return nil
}

// CleanupExpiredStories physically deletes expired rows and their media and
// returns how many were removed. The trigger cadence belongs to the caller.
func (s *storyService) CleanupExpiredStories(ctx context.Context) (int, error) {
	expired, err := s.stories.GetExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, story := range expired {
		if err := s.stories.DeleteStory(ctx, story.ID); err != nil {
			return deleted, err
		}
		if err := s.media.Delete(story.MediaURL); err != nil {
			log.Printf("failed to delete expired story media %s: %v", story.MediaURL, err)
		}
		deleted++
	}
	return deleted, nil
}
