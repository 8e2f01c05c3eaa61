package models

import "time"

// Post represents a feed post with denormalized engagement counters
type Post struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Caption      string    `json:"caption" gorm:"size:2000"`
	ImageURL     string    `json:"image_url" gorm:"size:255"`
	VideoURL     string    `json:"video_url" gorm:"size:255"`
	IsPrivate    bool      `json:"is_private" gorm:"default:false"`
	OwnerID      uint      `json:"owner_id" gorm:"index"`
	LikeCount    int64     `json:"like_count" gorm:"default:0"`
	CommentCount int64     `json:"comment_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreatePostRequest defines the multipart form fields for creating a post
type CreatePostRequest struct {
	Caption   string `form:"caption" validate:"omitempty,max=2000"`
	IsPrivate bool   `form:"is_private"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Caption   *string `json:"caption,omitempty" validate:"omitempty,max=2000"`
	IsPrivate *bool   `json:"is_private,omitempty"`
}
