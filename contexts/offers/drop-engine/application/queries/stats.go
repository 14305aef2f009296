package queries

import (
	"context"
	"log/slog"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	"dropspot/contexts/offers/drop-engine/ports"
)

type EngineStats struct {
	TotalDrops      int
	ActiveDrops     int
	UpcomingDrops   int
	PastDrops       int
	PendingClaims   int
	ApprovedClaims  int
	RejectedClaims  int
	WaitlistEntries int
	UnitsApproved   int
}

type StatsUseCase struct {
	Drops  ports.DropRepository
	Stats  ports.StatsRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u StatsUseCase) Execute(ctx context.Context) (EngineStats, error) {
	counts, err := u.Stats.Counts(ctx)
	if err != nil {
		return EngineStats{}, err
	}

	stats := EngineStats{
		TotalDrops:      counts.TotalDrops,
		PendingClaims:   counts.PendingClaims,
		ApprovedClaims:  counts.ApprovedClaims,
		RejectedClaims:  counts.RejectedClaims,
		WaitlistEntries: counts.WaitlistEntries,
		UnitsApproved:   counts.UnitsApproved,
	}

	// Phase counts are derived, not stored, so they come from a fresh listing
	// against the injected clock.
	drops, err := u.Drops.ListDrops(ctx, ports.DropListFilter{IncludeInactive: true})
	if err != nil {
		return EngineStats{}, err
	}
	now := u.Clock.Now()
	for _, drop := range drops {
		switch drop.PhaseAt(now) {
		case entities.DropPhaseActive:
			stats.ActiveDrops++
		case entities.DropPhaseUpcoming:
			stats.UpcomingDrops++
		default:
			stats.PastDrops++
		}
	}
	return stats, nil
}
