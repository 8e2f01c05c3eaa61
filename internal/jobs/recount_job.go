package jobs

import (
	"context"
	log "log/slog"

	"github.com/instashare-app/backend/internal/services"
)

// RecountJob rebuilds the denormalized like and comment counters from the
// underlying rows, healing any drift the decrement paths accumulated.
type RecountJob struct {
	engagement services.EngagementService
}

func NewRecountJob(engagement services.EngagementService) *RecountJob {
	return &RecountJob{engagement: engagement}
}

func (j *RecountJob) Run() {
	ctx := context.Background()
	log.Info("start engagement recount job")

	if err := j.engagement.RecountEngagement(ctx); err != nil {
		log.Error("engagement recount failed", "err", err)
		return
	}
	log.Info("engagement recount finished")
}
