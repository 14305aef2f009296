package commands

import (
	"context"
	"log/slog"
	"strings"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

type JoinWaitlistCommand struct {
	DropID string
	UserID string
}

type JoinWaitlistResult struct {
	Entry    entities.WaitlistEntry
	Position int
}

type JoinWaitlistUseCase struct {
	Drops       ports.DropRepository
	Waitlist    ports.WaitlistRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u JoinWaitlistUseCase) Execute(ctx context.Context, cmd JoinWaitlistCommand) (JoinWaitlistResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.DropID) == "" || strings.TrimSpace(cmd.UserID) == "" {
		return JoinWaitlistResult{}, domainerrors.ErrInvalidWaitlistEntry
	}

	drop, err := u.Drops.GetDrop(ctx, cmd.DropID)
	if err != nil {
		return JoinWaitlistResult{}, err
	}
	now := u.Clock.Now()
	if !drop.ActiveAt(now) {
		return JoinWaitlistResult{}, domainerrors.ErrDropNotJoinable
	}

	entryID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return JoinWaitlistResult{}, err
	}
	entry, err := entities.NewWaitlistEntry(entryID, cmd.DropID, cmd.UserID, now)
	if err != nil {
		return JoinWaitlistResult{}, err
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return JoinWaitlistResult{}, err
	}
	stored, err := u.Waitlist.JoinWaitlist(ctx, entry, ports.WaitlistEvent{
		EventID:    eventID,
		EventType:  EventTypeWaitlistJoined,
		DropID:     cmd.DropID,
		UserID:     cmd.UserID,
		OccurredAt: now.UTC(),
	})
	if err != nil {
		logger.Warn("waitlist join rejected",
			"event", "waitlist_join_rejected",
			"module", "offers/drop-engine",
			"layer", "application",
			"drop_id", cmd.DropID,
			"user_id", cmd.UserID,
			"error", err.Error(),
		)
		return JoinWaitlistResult{}, err
	}

	position, err := waitlistPosition(ctx, u.Waitlist, cmd.DropID, cmd.UserID)
	if err != nil {
		return JoinWaitlistResult{}, err
	}

	logger.Info("waitlist joined",
		"event", "waitlist_joined",
		"module", "offers/drop-engine",
		"layer", "application",
		"drop_id", cmd.DropID,
		"user_id", cmd.UserID,
		"position", position,
	)
	return JoinWaitlistResult{Entry: stored, Position: position}, nil
}

// waitlistPosition recomputes the 1-based rank from stored entries so it can
// never go stale relative to concurrent joins/leaves.
func waitlistPosition(ctx context.Context, repo ports.WaitlistRepository, dropID string, userID string) (int, error) {
	entries, err := repo.ListWaitlist(ctx, dropID)
	if err != nil {
		return 0, err
	}
	for i, entry := range entries {
		if entry.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, domainerrors.ErrNotInWaitlist
}
