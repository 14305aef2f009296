package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

type DecideClaimCommand struct {
	ClaimID string
	AdminID string
	Approve bool
}

type DecideClaimResult struct {
	Claim entities.Claim
	// AutoRejected marks an approval that lost the stock race and was
	// converted to a rejection with RejectReasonInsufficientStock.
	AutoRejected bool
}

type DecideClaimUseCase struct {
	Claims      ports.ClaimRepository
	Stock       ports.StockRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute finalizes a pending claim. Approval reserves stock first; the
// reservation is the only authoritative stock check, so two approvals racing
// for the last unit resolve deterministically and the loser is auto-rejected
// with the insufficient-stock reason. Re-invoking on a decided claim fails
// with ErrClaimNotPending instead of double-applying effects.
func (u DecideClaimUseCase) Execute(ctx context.Context, cmd DecideClaimCommand) (DecideClaimResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ClaimID) == "" {
		return DecideClaimResult{}, domainerrors.ErrClaimNotFound
	}

	claim, err := u.Claims.GetClaim(ctx, cmd.ClaimID)
	if err != nil {
		return DecideClaimResult{}, err
	}
	if claim.Decided() {
		return DecideClaimResult{}, domainerrors.ErrClaimNotPending
	}
	now := u.Clock.Now()

	if !cmd.Approve {
		decided := claim.Decide(entities.ClaimStatusRejected, "", now)
		if err := u.finalize(ctx, decided, now); err != nil {
			return DecideClaimResult{}, err
		}
		logger.Info("claim rejected",
			"event", "claim_rejected",
			"module", "offers/drop-engine",
			"layer", "application",
			"claim_id", decided.ClaimID,
			"drop_id", decided.DropID,
			"admin_id", cmd.AdminID,
		)
		return DecideClaimResult{Claim: decided}, nil
	}

	if err := u.Stock.Reserve(ctx, claim.DropID, claim.Quantity); err != nil {
		if !errors.Is(err, domainerrors.ErrInsufficientStock) {
			return DecideClaimResult{}, err
		}
		// A pending claim cannot stay pending against exhausted stock.
		decided := claim.Decide(entities.ClaimStatusRejected, entities.RejectReasonInsufficientStock, now)
		if err := u.finalize(ctx, decided, now); err != nil {
			return DecideClaimResult{}, err
		}
		logger.Warn("claim approval lost stock race",
			"event", "claim_auto_rejected",
			"module", "offers/drop-engine",
			"layer", "application",
			"claim_id", decided.ClaimID,
			"drop_id", decided.DropID,
			"quantity", decided.Quantity,
			"admin_id", cmd.AdminID,
		)
		return DecideClaimResult{Claim: decided, AutoRejected: true}, nil
	}

	decided := claim.Decide(entities.ClaimStatusApproved, "", now)
	if err := u.finalize(ctx, decided, now); err != nil {
		// A concurrent decision won between Reserve and Finalize; hand the
		// reserved units back.
		if restoreErr := u.Stock.Restore(ctx, claim.DropID, claim.Quantity); restoreErr != nil {
			logger.Error("stock restore after lost finalize failed",
				"event", "claim_stock_restore_failed",
				"module", "offers/drop-engine",
				"layer", "application",
				"claim_id", claim.ClaimID,
				"drop_id", claim.DropID,
				"error", restoreErr.Error(),
			)
		}
		return DecideClaimResult{}, err
	}

	logger.Info("claim approved",
		"event", "claim_approved",
		"module", "offers/drop-engine",
		"layer", "application",
		"claim_id", decided.ClaimID,
		"drop_id", decided.DropID,
		"quantity", decided.Quantity,
		"admin_id", cmd.AdminID,
	)
	return DecideClaimResult{Claim: decided}, nil
}

func (u DecideClaimUseCase) finalize(ctx context.Context, decided entities.Claim, now time.Time) error {
	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	return u.Claims.FinalizeClaim(ctx, decided, ports.ClaimEvent{
		EventID:    eventID,
		EventType:  EventTypeClaimDecided,
		ClaimID:    decided.ClaimID,
		DropID:     decided.DropID,
		UserID:     decided.UserID,
		Quantity:   decided.Quantity,
		Status:     string(decided.Status),
		Reason:     decided.RejectReason,
		OccurredAt: now.UTC(),
	})
}
