// Package workers runs periodic housekeeping jobs.
package workers

import (
	"context"
	"time"

	"caredesk/internal/logger"
)

const revocationPruneInterval = 5 * time.Minute

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

type RevocationPruner interface {
	Prune(ctx context.Context) (int, error)
}

type AuditTrimmer interface {
	Trim(ctx context.Context, cutoff time.Time) (int64, error)
}

// ManagerServices holds the stores the workers clean up. Nil fields disable
// the matching worker.
type ManagerServices struct {
	Revocations    RevocationPruner
	Audit          AuditTrimmer
	AuditRetention time.Duration
}

type Manager struct {
	log logger.Logger

	scheduler *Scheduler
	services  *ManagerServices
}

func NewManager(log logger.Logger, scheduler *Scheduler, services *ManagerServices) *Manager {
	return &Manager{
		log: log,

		scheduler: scheduler,
		services:  services,
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.log.Info("worker: manager started")

	if m.services.Revocations != nil {
		m.scheduler.RunByDuration(ctx, revocationPruneInterval, NewRevocationPruneWorker(m.services.Revocations, m.log))
	}

	if m.services.Audit != nil && m.services.AuditRetention > 0 {
		m.scheduler.RunDaily(ctx, DailySchedule{Hour: 2, Minute: 0},
			NewAuditTrimWorker(m.services.Audit, m.services.AuditRetention, m.log),
		)
	}
}

// Wait blocks until every started worker has stopped.
func (m *Manager) Wait() {
	m.scheduler.Wait()
}
