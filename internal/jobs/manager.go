package jobs

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// Manager owns the cron engine and the scheduled maintenance jobs
type Manager struct {
	engine        *cron.Cron
	storySweepJob *StorySweepJob
	recountJob    *RecountJob

	storySweepSpec string
	recountSpec    string
}

func NewManager(storySweepJob *StorySweepJob, recountJob *RecountJob, storySweepSpec, recountSpec string) *Manager {
	return &Manager{
		engine:         cron.New(),
		storySweepJob:  storySweepJob,
		recountJob:     recountJob,
		storySweepSpec: storySweepSpec,
		recountSpec:    recountSpec,
	}
}

func (m *Manager) RegisterJobs() error {
	if _, err := m.engine.AddJob(m.storySweepSpec, m.storySweepJob); err != nil {
		return err
	}
	if _, err := m.engine.AddJob(m.recountSpec, m.recountJob); err != nil {
		return err
	}
	return nil
}

func (m *Manager) Start() {
	log.Info("cron engine started")
	m.engine.Start()
}

func (m *Manager) Stop() {
	log.Info("cron engine stopped")
	m.engine.Stop()
}
