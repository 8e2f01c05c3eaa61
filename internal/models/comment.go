package models

import "time"

// Comment attaches to exactly one of a post or a reel and may reply to
// another comment on the same target. Only top-level comments (ParentID nil)
// count toward the target's comment_count.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text"`
	UserID    uint      `json:"user_id" gorm:"index"`
	EditorID  *uint     `json:"editor_id,omitempty"`
	PostID    *uint     `json:"post_id,omitempty" gorm:"index"`
	ReelID    *uint     `json:"reel_id,omitempty" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment or reply
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
