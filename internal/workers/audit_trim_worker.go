package workers

import (
	"context"
	"fmt"
	"time"

	"caredesk/internal/logger"
)

type AuditTrimWorker struct {
	audit     AuditTrimmer
	retention time.Duration
	log       logger.Logger
	now       func() time.Time
}

func NewAuditTrimWorker(audit AuditTrimmer, retention time.Duration, log logger.Logger) Worker {
	return &AuditTrimWorker{
		audit:     audit,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

func (w *AuditTrimWorker) Name() string {
	return "audit_trim"
}

func (w *AuditTrimWorker) Run(ctx context.Context) error {
	cutoff := w.now().UTC().Add(-w.retention)

	removed, err := w.audit.Trim(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to trim audit stream: %w", err)
	}

	w.log.Info("audit stream trimmed", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	return nil
}
