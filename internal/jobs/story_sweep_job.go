package jobs

import (
	"context"
	log "log/slog"

	"github.com/instashare-app/backend/internal/services"
)

// StorySweepJob removes stories past their 24h expiry along with their media
type StorySweepJob struct {
	stories services.StoryService
}

func NewStorySweepJob(stories services.StoryService) *StorySweepJob {
	return &StorySweepJob{stories: stories}
}

func (j *StorySweepJob) Run() {
	ctx := context.Background()
	log.Info("start story sweep job")

	removed, err := j.stories.CleanupExpiredStories(ctx)
	if err != nil {
		log.Error("story sweep failed", "err", err)
		return
	}
	if removed > 0 {
		log.Info("story sweep finished", "removed", removed)
	}
}
