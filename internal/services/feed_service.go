package services

import (
	"context"

	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
)

// FeedService is the read-only aggregation layer: feeds, trending, search,
// and recommendations. Per-page liked-by-caller annotation uses one batched
// membership query, never one query per row.
type FeedService interface {
	ListFeed(ctx context.Context, callerID uint, skip, limit int) ([]PostView, error)
	ListUserPosts(ctx context.Context, ownerID, callerID uint, skip, limit int) ([]PostView, error)
	ListTrendingPosts(ctx context.Context, callerID uint, skip, limit int) ([]PostView, error)
	SearchPosts(ctx context.Context, query string, callerID uint, skip, limit int) ([]PostView, error)

	ListReels(ctx context.Context, callerID uint, skip, limit int) ([]ReelView, error)
	ListUserReels(ctx context.Context, ownerID, callerID uint, skip, limit int) ([]ReelView, error)
	ListFollowingReels(ctx context.Context, callerID uint, skip, limit int) ([]ReelView, error)

	SearchUsers(ctx context.Context, query string, skip, limit int) ([]models.UserCompact, error)
	RecommendedUsers(ctx context.Context, callerID uint, skip, limit int) ([]models.UserCompact, error)
}

// PostView is a post annotated with its owner and caller-specific flags
type PostView struct {
	models.Post
	Owner                models.UserCompact `json:"owner"`
	IsLikedByCurrentUser bool               `json:"is_liked_by_current_user"`
}

// ReelView mirrors PostView for reels
type ReelView struct {
	models.Reel
	Owner                models.UserCompact `json:"owner"`
	IsLikedByCurrentUser bool               `json:"is_liked_by_current_user"`
}

type feedService struct {
	posts   repositories.PostRepository
	reels   repositories.ReelRepository
	users   repositories.UserRepository
	follows repositories.FollowRepository
	likes   repositories.LikeRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(
	posts repositories.PostRepository,
	reels repositories.ReelRepository,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
) FeedService {
	return &feedService{
		posts:   posts,
		reels:   reels,
		users:   users,
		follows: follows,
		likes:   likes,
	}
}

func (s *feedService) ListFeed(ctx context.Context, callerID uint, skip, limit int) ([]PostView, error) {
	posts, err := s.posts.GetVisiblePosts(ctx, callerID, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.enrichPosts(ctx, posts, callerID)
}

// ListUserPosts restricts private items to the owner viewing their own page.
func (s *feedService) ListUserPosts(ctx context.Context, ownerID, callerID uint, skip, limit int) ([]PostView, error) {
	posts, err := s.posts.GetPostsByOwner(ctx, ownerID, ownerID == callerID, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.enrichPosts(ctx, posts, callerID)
}

func (s *feedService) ListTrendingPosts(ctx context.Context, callerID uint, skip, limit int) ([]PostView, error) {
	posts, err := s.posts.GetTrendingPosts(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.enrichPosts(ctx, posts, callerID)
}

func (s *feedService) SearchPosts(ctx context.Context, query string, callerID uint, skip, limit int) ([]PostView, error) {
	followedIDs, err := s.follows.GetFollowingIDs(ctx, callerID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.SearchPosts(ctx, query, callerID, followedIDs, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.enrichPosts(ctx, posts, callerID)
}

func (s *feedService) ListReels(ctx context.Context, callerID uint, skip, limit int) ([]ReelView, error) {
	reels, err := s.reels.GetAllReels(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.enrichReels(ctx, reels, callerID)
}

func (s *feedService) ListUserReels(ctx context.Context, ownerID, callerID uint, skip, limit int) ([]ReelView, error) {
	reels, err := s.reels.GetReelsByOwner(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.enrichReels(ctx, reels, callerID)
}

func (s *feedService) ListFollowingReels(ctx context.Context, callerID uint, skip, limit int) ([]ReelView, error) {
	followedIDs, err := s.follows.GetFollowingIDs(ctx, callerID)
	if err != nil {
		return nil, err
	}
	reels, err := s.reels.GetReelsByOwners(ctx, followedIDs, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.enrichReels(ctx, reels, callerID)
}

func (s *feedService) SearchUsers(ctx context.Context, query string, skip, limit int) ([]models.UserCompact, error) {
	users, err := s.users.SearchUsers(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	return compact(users), nil
}

func (s *feedService) RecommendedUsers(ctx context.Context, callerID uint, skip, limit int) ([]models.UserCompact, error) {
	users, err := s.users.GetRecommendedUsers(ctx, callerID, skip, limit)
	if err != nil {
		return nil, err
	}
	return compact(users), nil
}

func compact(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}

func (s *feedService) enrichPosts(ctx context.Context, posts []models.Post, callerID uint) ([]PostView, error) {
	postIDs := make([]uint, len(posts))
	ownerIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool)
	for i, p := range posts {
		postIDs[i] = p.ID
		if !seen[p.OwnerID] {
			seen[p.OwnerID] = true
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	owners, err := s.users.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	ownerMap := make(map[uint]models.UserCompact, len(owners))
	for i := range owners {
		ownerMap[owners[i].ID] = owners[i].ToCompact()
	}

	likedMap := map[uint]bool{}
	if callerID != 0 {
		likedMap, err = s.likes.GetLikedPostIDs(ctx, callerID, postIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = PostView{
			Post:                 p,
			Owner:                ownerMap[p.OwnerID],
			IsLikedByCurrentUser: likedMap[p.ID],
		}
	}
	return views, nil
}

func (s *feedService) enrichReels(ctx context.Context, reels []models.Reel, callerID uint) ([]ReelView, error) {
	reelIDs := make([]uint, len(reels))
	ownerIDs := make([]uint, 0, len(reels))
	seen := make(map[uint]bool)
	for i, r := range reels {
		reelIDs[i] = r.ID
		if !seen[r.OwnerID] {
			seen[r.OwnerID] = true
			ownerIDs = append(ownerIDs, r.OwnerID)
		}
	}

	owners, err := s.users.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	ownerMap := make(map[uint]models.UserCompact, len(owners))
	for i := range owners {
		ownerMap[owners[i].ID] = owners[i].ToCompact()
	}

	likedMap := map[uint]bool{}
	if callerID != 0 {
		likedMap, err = s.likes.GetLikedReelIDs(ctx, callerID, reelIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]ReelView, len(reels))
	for i, r := range reels {
		views[i] = ReelView{
			Reel:                 r,
			Owner:                ownerMap[r.OwnerID],
			IsLikedByCurrentUser: likedMap[r.ID],
		}
	}
	return views, nil
}
