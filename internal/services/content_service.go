package services

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
	"github.com/instashare-app/backend/internal/storage"
	"gorm.io/gorm"
)

// MediaUpload carries one inbound media stream.
type MediaUpload struct {
	Reader   io.Reader
	Filename string
}

// ContentService owns post and reel lifecycles. Media is written before the
// row; if the insert fails the saved file is deleted best-effort, and a
// failure of that cleanup is logged, not surfaced.
type ContentService interface {
	CreatePost(ctx context.Context, ownerID uint, caption string, isPrivate bool, image, video *MediaUpload) (*models.Post, error)
	GetPost(ctx context.Context, postID uint) (*models.Post, error)
	UpdatePost(ctx context.Context, actorID uint, isAdmin bool, postID uint, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, actorID uint, isAdmin bool, postID uint) error

	CreateReel(ctx context.Context, ownerID uint, caption string, video *MediaUpload) (*models.Reel, error)
	GetReel(ctx context.Context, reelID uint) (*models.Reel, error)
	UpdateReel(ctx context.Context, actorID uint, isAdmin bool, reelID uint, req models.UpdateReelRequest) (*models.Reel, error)
	DeleteReel(ctx context.Context, actorID uint, isAdmin bool, reelID uint) error
}

type contentService struct {
	db    *gorm.DB
	posts repositories.PostRepository
	reels repositories.ReelRepository
	media storage.MediaStore
}

// NewContentService creates a new ContentService
func NewContentService(db *gorm.DB, posts repositories.PostRepository, reels repositories.ReelRepository, media storage.MediaStore) ContentService {
	return &contentService{db: db, posts: posts, reels: reels, media: media}
}

func (s *contentService) saveMedia(upload *MediaUpload, subfolder string) (string, error) {
	if upload == nil {
		return "", nil
	}
	return s.media.Save(upload.Reader, upload.Filename, subfolder)
}

func (s *contentService) discardMedia(refs ...string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.media.Delete(ref); err != nil {
			log.Printf("failed to delete orphaned media %s: %v", ref, err)
		}
	}
}

func (s *contentService) CreatePost(ctx context.Context, ownerID uint, caption string, isPrivate bool, image, video *MediaUpload) (*models.Post, error) {
	imageURL, err := s.saveMedia(image, "images")
	if err != nil {
		return nil, err
	}
	videoURL, err := s.saveMedia(video, "videos")
	if err != nil {
		s.discardMedia(imageURL)
		return nil, err
	}

	post := &models.Post{
		Caption:   caption,
		ImageURL:  imageURL,
		VideoURL:  videoURL,
		IsPrivate: isPrivate,
		OwnerID:   ownerID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.discardMedia(imageURL, videoURL)
		return nil, err
	}
	return post, nil
}

func (s *contentService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *contentService) UpdatePost(ctx context.Context, actorID uint, isAdmin bool, postID uint, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	if req.Caption != nil {
		post.Caption = *req.Caption
	}
	if req.IsPrivate != nil {
		post.IsPrivate = *req.IsPrivate
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the row with its likes, comments, and notifications in
// one transaction, then deletes media best-effort.
func (s *contentService) DeletePost(ctx context.Context, actorID uint, isAdmin bool, postID uint) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != actorID && !isAdmin {
		return ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return s.posts.WithTx(tx).DeletePost(ctx, postID)
	})
	if err != nil {
		return err
	}

	s.discardMedia(post.ImageURL, post.VideoURL)
	return nil
}

func (s *contentService) CreateReel(ctx context.Context, ownerID uint, caption string, video *MediaUpload) (*models.Reel, error) {
	videoURL, err := s.saveMedia(video, "reels")
	if err != nil {
		return nil, err
	}

	reel := &models.Reel{
		VideoURL: videoURL,
		Caption:  caption,
		OwnerID:  ownerID,
	}
	if err := s.reels.CreateReel(ctx, reel); err != nil {
		s.discardMedia(videoURL)
		return nil, err
	}
	return reel, nil
}

func (s *contentService) GetReel(ctx context.Context, reelID uint) (*models.Reel, error) {
	reel, err := s.reels.GetReelByID(ctx, reelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReelNotFound
		}
		return nil, err
	}
	return reel, nil
}

func (s *contentService) UpdateReel(ctx context.Context, actorID uint, isAdmin bool, reelID uint, req models.UpdateReelRequest) (*models.Reel, error) {
	reel, err := s.GetReel(ctx, reelID)
	if err != nil {
		return nil, err
	}
	if reel.OwnerID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	if req.Caption != nil {
		reel.Caption = *req.Caption
	}
	if err := s.reels.UpdateReel(ctx, reel); err != nil {
		return nil, err
	}
	return reel, nil
}

func (s *contentService) DeleteReel(ctx context.Context, actorID uint, isAdmin bool, reelID uint) error {
	reel, err := s.GetReel(ctx, reelID)
	if err != nil {
		return err
	}
	if reel.OwnerID != actorID && !isAdmin {
		return ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reel_id = ?", reelID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reel_id = ?", reelID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reel_id = ?", reelID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return s.reels.WithTx(tx).DeleteReel(ctx, reelID)
	})
	if err != nil {
		return err
	}

	s.discardMedia(reel.VideoURL)
	return nil
}
