package commands

import (
	"context"
	"log/slog"
	"strings"

	application "dropspot/contexts/offers/drop-engine/application"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

type LeaveWaitlistCommand struct {
	DropID string
	UserID string
}

type LeaveWaitlistUseCase struct {
	Waitlist    ports.WaitlistRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute removes the caller's entry. A pending claim pins the entry, so the
// repository rejects the leave with ErrPendingClaimExists; the check lives
// there, atomic with the delete, rather than as a separate read here.
func (u LeaveWaitlistUseCase) Execute(ctx context.Context, cmd LeaveWaitlistCommand) error {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.DropID) == "" || strings.TrimSpace(cmd.UserID) == "" {
		return domainerrors.ErrInvalidWaitlistEntry
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	now := u.Clock.Now().UTC()
	if err := u.Waitlist.LeaveWaitlist(ctx, cmd.DropID, cmd.UserID, ports.WaitlistEvent{
		EventID:    eventID,
		EventType:  EventTypeWaitlistLeft,
		DropID:     cmd.DropID,
		UserID:     cmd.UserID,
		OccurredAt: now,
	}); err != nil {
		logger.Warn("waitlist leave rejected",
			"event", "waitlist_leave_rejected",
			"module", "offers/drop-engine",
			"layer", "application",
			"drop_id", cmd.DropID,
			"user_id", cmd.UserID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("waitlist left",
		"event", "waitlist_left",
		"module", "offers/drop-engine",
		"layer", "application",
		"drop_id", cmd.DropID,
		"user_id", cmd.UserID,
	)
	return nil
}
