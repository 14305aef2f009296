package queries

import (
	"context"
	"log/slog"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	"dropspot/contexts/offers/drop-engine/ports"
)

type GetDropUseCase struct {
	Drops  ports.DropRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u GetDropUseCase) Execute(ctx context.Context, dropID string) (DropWithPhase, error) {
	drop, err := u.Drops.GetDrop(ctx, dropID)
	if err != nil {
		return DropWithPhase{}, err
	}
	return DropWithPhase{Drop: drop, Phase: drop.PhaseAt(u.Clock.Now())}, nil
}

// DropStatus is the per-caller view of one drop: phase plus the caller's
// waitlist standing and claim state, resolved in a single query so the
// presentation layer never maintains its own cache.
type DropStatus struct {
	Drop            entities.Drop
	Phase           entities.DropPhase
	InWaitlist      bool
	Position        int
	WaitlistCount   int
	Claim           *entities.Claim
	HasPendingClaim bool
	HasDecidedClaim bool
}

type DropStatusUseCase struct {
	Drops    ports.DropRepository
	Waitlist ports.WaitlistRepository
	Claims   ports.ClaimRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (u DropStatusUseCase) Execute(ctx context.Context, dropID string, userID string) (DropStatus, error) {
	drop, err := u.Drops.GetDrop(ctx, dropID)
	if err != nil {
		return DropStatus{}, err
	}

	status := DropStatus{
		Drop:  drop,
		Phase: drop.PhaseAt(u.Clock.Now()),
	}

	entries, err := u.Waitlist.ListWaitlist(ctx, dropID)
	if err != nil {
		return DropStatus{}, err
	}
	status.WaitlistCount = len(entries)
	for i, entry := range entries {
		if entry.UserID == userID {
			status.InWaitlist = true
			status.Position = i + 1
			break
		}
	}

	claims, err := u.Claims.ListClaimsByUser(ctx, userID)
	if err != nil {
		return DropStatus{}, err
	}
	for _, claim := range claims {
		if claim.DropID != dropID {
			continue
		}
		if !claim.Decided() {
			pending := claim
			status.Claim = &pending
			status.HasPendingClaim = true
			break
		}
		// Keep the most recent decided claim when no pending one exists.
		if status.Claim == nil || claim.CreatedAt.After(status.Claim.CreatedAt) {
			decided := claim
			status.Claim = &decided
			status.HasDecidedClaim = true
		}
	}
	return status, nil
}
