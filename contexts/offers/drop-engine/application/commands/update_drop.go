package commands

import (
	"context"
	"log/slog"
	"time"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

// UpdateDropCommand carries optional field overrides; nil means unchanged.
type UpdateDropCommand struct {
	DropID        string
	Title         *string
	Description   *string
	ImageURL      *string
	Address       *string
	RadiusMeters  *float64
	TotalQuantity *int
	StartTime     *time.Time
	EndTime       *time.Time
	IsActive      *bool
}

type UpdateDropUseCase struct {
	Drops  ports.DropRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u UpdateDropUseCase) Execute(ctx context.Context, cmd UpdateDropCommand) (entities.Drop, error) {
	logger := application.ResolveLogger(u.Logger)

	drop, err := u.Drops.GetDrop(ctx, cmd.DropID)
	if err != nil {
		return entities.Drop{}, err
	}

	if cmd.Title != nil {
		drop.Title = *cmd.Title
	}
	if cmd.Description != nil {
		drop.Description = *cmd.Description
	}
	if cmd.ImageURL != nil {
		drop.ImageURL = *cmd.ImageURL
	}
	if cmd.Address != nil {
		drop.Address = *cmd.Address
	}
	if cmd.RadiusMeters != nil {
		drop.RadiusMeters = *cmd.RadiusMeters
	}
	if cmd.TotalQuantity != nil {
		// Raising or lowering the total moves remaining by the same delta so
		// already-approved units stay accounted for.
		difference := *cmd.TotalQuantity - drop.TotalQuantity
		newTotal := *cmd.TotalQuantity
		newRemaining := drop.RemainingQuantity + difference
		if newTotal < 0 || newRemaining < 0 || newRemaining > newTotal {
			return entities.Drop{}, domainerrors.ErrInvalidDrop
		}
		drop.TotalQuantity = newTotal
		drop.RemainingQuantity = newRemaining
	}
	if cmd.StartTime != nil {
		drop.StartTime = cmd.StartTime.UTC()
	}
	if cmd.EndTime != nil {
		drop.EndTime = cmd.EndTime.UTC()
	}
	if !drop.EndTime.After(drop.StartTime) {
		return entities.Drop{}, domainerrors.ErrInvalidDrop
	}
	if cmd.IsActive != nil {
		drop.IsActive = *cmd.IsActive
	}
	drop.UpdatedAt = u.Clock.Now().UTC()

	if err := u.Drops.UpdateDrop(ctx, drop); err != nil {
		logger.Error("drop update failed",
			"event", "drop_update_failed",
			"module", "offers/drop-engine",
			"layer", "application",
			"drop_id", drop.DropID,
			"error", err.Error(),
		)
		return entities.Drop{}, err
	}

	logger.Info("drop updated",
		"event", "drop_updated",
		"module", "offers/drop-engine",
		"layer", "application",
		"drop_id", drop.DropID,
	)
	return drop, nil
}

// DeactivateDropUseCase is the soft delete: the drop stays readable but its
// phase derives to past, which closes joins and claims.
type DeactivateDropUseCase struct {
	Drops  ports.DropRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u DeactivateDropUseCase) Execute(ctx context.Context, dropID string) error {
	logger := application.ResolveLogger(u.Logger)

	drop, err := u.Drops.GetDrop(ctx, dropID)
	if err != nil {
		return err
	}
	if !drop.IsActive {
		return nil
	}
	drop.IsActive = false
	drop.UpdatedAt = u.Clock.Now().UTC()

	if err := u.Drops.UpdateDrop(ctx, drop); err != nil {
		return err
	}
	logger.Info("drop deactivated",
		"event", "drop_deactivated",
		"module", "offers/drop-engine",
		"layer", "application",
		"drop_id", dropID,
	)
	return nil
}
