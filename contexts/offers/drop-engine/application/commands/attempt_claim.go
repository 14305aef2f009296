package commands

import (
	"context"
	"log/slog"
	"strings"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/domain/services"
	"dropspot/contexts/offers/drop-engine/ports"
)

type AttemptClaimCommand struct {
	DropID         string
	UserID         string
	Quantity       int
	ClaimLatitude  float64
	ClaimLongitude float64
}

type AttemptClaimUseCase struct {
	Drops         ports.DropRepository
	Waitlist      ports.WaitlistRepository
	Claims        ports.ClaimRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	CodeGenerator ports.CodeGenerator
	Logger        *slog.Logger
}

// Execute admits a claim attempt in this order: drop phase, waitlist
// membership, duplicate pending claim, geofence, stock pre-check. Stock is
// not reserved here; reservation happens at admin approval so a backlog of
// unreviewed claims cannot starve approvals. The duplicate check is
// re-verified atomically inside CreatePendingClaim, which makes a timed-out
// retry observe ErrDuplicateClaim instead of creating a second claim.
func (u AttemptClaimUseCase) Execute(ctx context.Context, cmd AttemptClaimCommand) (entities.Claim, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.DropID) == "" || strings.TrimSpace(cmd.UserID) == "" {
		return entities.Claim{}, domainerrors.ErrInvalidClaimRequest
	}

	drop, err := u.Drops.GetDrop(ctx, cmd.DropID)
	if err != nil {
		return entities.Claim{}, err
	}
	_, inWaitlist, err := u.Waitlist.GetWaitlistEntry(ctx, cmd.DropID, cmd.UserID)
	if err != nil {
		return entities.Claim{}, err
	}
	_, hasPending, err := u.Claims.GetPendingClaim(ctx, cmd.DropID, cmd.UserID)
	if err != nil {
		return entities.Claim{}, err
	}

	now := u.Clock.Now()
	distance, err := services.EvaluateClaimAdmission(
		drop,
		inWaitlist,
		hasPending,
		cmd.Quantity,
		cmd.ClaimLatitude,
		cmd.ClaimLongitude,
		now,
	)
	if err != nil {
		logger.Warn("claim attempt rejected",
			"event", "claim_attempt_rejected",
			"module", "offers/drop-engine",
			"layer", "application",
			"drop_id", cmd.DropID,
			"user_id", cmd.UserID,
			"distance_meters", distance,
			"error", err.Error(),
		)
		return entities.Claim{}, err
	}

	claimID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Claim{}, err
	}
	code, err := u.CodeGenerator.NewCode(ctx)
	if err != nil {
		return entities.Claim{}, err
	}
	claim, err := entities.NewClaim(
		claimID,
		cmd.DropID,
		cmd.UserID,
		cmd.Quantity,
		cmd.ClaimLatitude,
		cmd.ClaimLongitude,
		distance,
		code,
		now,
	)
	if err != nil {
		return entities.Claim{}, err
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Claim{}, err
	}
	if err := u.Claims.CreatePendingClaim(ctx, claim, ports.ClaimEvent{
		EventID:    eventID,
		EventType:  EventTypeClaimAttempted,
		ClaimID:    claim.ClaimID,
		DropID:     claim.DropID,
		UserID:     claim.UserID,
		Quantity:   claim.Quantity,
		Status:     string(claim.Status),
		OccurredAt: now.UTC(),
	}); err != nil {
		return entities.Claim{}, err
	}

	logger.Info("claim attempt accepted",
		"event", "claim_attempt_accepted",
		"module", "offers/drop-engine",
		"layer", "application",
		"claim_id", claim.ClaimID,
		"drop_id", claim.DropID,
		"user_id", claim.UserID,
		"quantity", claim.Quantity,
		"distance_meters", distance,
	)
	return claim, nil
}
