package queries

import (
	"context"
	"log/slog"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

type WaitlistPositionResult struct {
	DropID   string
	UserID   string
	Position int
	Total    int
}

type WaitlistPositionUseCase struct {
	Waitlist ports.WaitlistRepository
	Logger   *slog.Logger
}

// Execute recomputes the 1-based rank from the stored order on every call;
// nothing is cached, so concurrent joins/leaves ahead of the queried entry
// are always reflected.
func (u WaitlistPositionUseCase) Execute(ctx context.Context, dropID string, userID string) (WaitlistPositionResult, error) {
	entries, err := u.Waitlist.ListWaitlist(ctx, dropID)
	if err != nil {
		return WaitlistPositionResult{}, err
	}
	for i, entry := range entries {
		if entry.UserID == userID {
			return WaitlistPositionResult{
				DropID:   dropID,
				UserID:   userID,
				Position: i + 1,
				Total:    len(entries),
			}, nil
		}
	}
	return WaitlistPositionResult{}, domainerrors.ErrNotInWaitlist
}

type WaitlistCountUseCase struct {
	Drops    ports.DropRepository
	Waitlist ports.WaitlistRepository
	Logger   *slog.Logger
}

func (u WaitlistCountUseCase) Execute(ctx context.Context, dropID string) (int, error) {
	if _, err := u.Drops.GetDrop(ctx, dropID); err != nil {
		return 0, err
	}
	return u.Waitlist.CountWaitlist(ctx, dropID)
}

// MyWaitlistItem pairs a membership with its live position.
type MyWaitlistItem struct {
	Entry    entities.WaitlistEntry
	Position int
}

type MyWaitlistUseCase struct {
	Waitlist ports.WaitlistRepository
	Logger   *slog.Logger
}

func (u MyWaitlistUseCase) Execute(ctx context.Context, userID string) ([]MyWaitlistItem, error) {
	entries, err := u.Waitlist.ListUserWaitlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]MyWaitlistItem, 0, len(entries))
	for _, entry := range entries {
		dropEntries, err := u.Waitlist.ListWaitlist(ctx, entry.DropID)
		if err != nil {
			return nil, err
		}
		position := 0
		for i, candidate := range dropEntries {
			if candidate.UserID == userID {
				position = i + 1
				break
			}
		}
		items = append(items, MyWaitlistItem{Entry: entry, Position: position})
	}
	return items, nil
}
