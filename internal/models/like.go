package models

import "time"

// Like attaches to exactly one of a post or a reel. The composite unique
// indexes enforce at-most-one like per (user, target) at the storage layer,
// backstopping the pre-insert existence check against concurrent requests.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like;uniqueIndex:idx_user_reel_like"`
	PostID    *uint     `json:"post_id,omitempty" gorm:"index;uniqueIndex:idx_user_post_like"`
	ReelID    *uint     `json:"reel_id,omitempty" gorm:"index;uniqueIndex:idx_user_reel_like"`
	CreatedAt time.Time `json:"created_at"`
}
