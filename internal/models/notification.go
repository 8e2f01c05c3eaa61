package models

import "time"

// Notification kinds form a closed set; anything else is rejected at write time.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// Notification is a best-effort fan-out row emitted as a side effect of
// engagement and follow mutations. UserID is the recipient.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	SenderID  uint      `json:"sender_id" gorm:"index"`
	Type      string    `json:"notification_type" gorm:"size:30;column:notification_type"`
	PostID    *uint     `json:"post_id,omitempty"`
	ReelID    *uint     `json:"reel_id,omitempty"`
	CommentID *uint     `json:"comment_id,omitempty" gorm:"index"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
