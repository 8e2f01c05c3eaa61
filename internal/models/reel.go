package models

import "time"

// Reel represents a short video with the same counter shape as Post
type Reel struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	VideoURL     string    `json:"video_url" gorm:"size:255"`
	Caption      string    `json:"caption" gorm:"size:2000"`
	OwnerID      uint      `json:"owner_id" gorm:"index"`
	LikeCount    int64     `json:"like_count" gorm:"default:0"`
	CommentCount int64     `json:"comment_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

// UpdateReelRequest defines the request body for updating a reel caption
type UpdateReelRequest struct {
	Caption *string `json:"caption,omitempty" validate:"omitempty,max=2000"`
}
