package models

import "time"

// Story is ephemeral media; expiry is a pure function of time and expired
// rows are physically swept, never flagged.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MediaURL  string    `json:"media_url" gorm:"size:255"`
	OwnerID   uint      `json:"owner_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour
