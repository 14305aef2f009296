package workers

import (
	"context"
	"log/slog"
	"time"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/ports"
)

// DropCompleter sweeps active drops whose window closed and flips them
// inactive, so ended drops stop accepting joins/claims even when nobody
// queries them.
type DropCompleter struct {
	Drops     ports.DropRepository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j DropCompleter) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	completed, err := j.Drops.CompleteDropsPastEnd(ctx, now, limit)
	if err != nil {
		logger.Error("drop completion sweep failed",
			"event", "drop_completion_failed",
			"module", "offers/drop-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(completed) > 0 {
		logger.Info("drop completion sweep completed",
			"event", "drop_completion_completed",
			"module", "offers/drop-engine",
			"layer", "worker",
			"completed_count", len(completed),
		)
	}
	return nil
}
