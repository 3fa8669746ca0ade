package workers

import (
	"context"
	"fmt"

	"caredesk/internal/logger"
)

type RevocationPruneWorker struct {
	revocations RevocationPruner
	log         logger.Logger
}

func NewRevocationPruneWorker(revocations RevocationPruner, log logger.Logger) Worker {
	return &RevocationPruneWorker{
		revocations: revocations,
		log:         log,
	}
}

func (w *RevocationPruneWorker) Name() string {
	return "revocation_prune"
}

func (w *RevocationPruneWorker) Run(ctx context.Context) error {
	removed, err := w.revocations.Prune(ctx)
	if err != nil {
		return fmt.Errorf("failed to prune revocations: %w", err)
	}

	if removed > 0 {
		w.log.Debug("pruned expired revocations", "count", removed)
	}

	return nil
}
