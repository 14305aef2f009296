package commands

import (
	"context"
	"log/slog"
	"time"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	"dropspot/contexts/offers/drop-engine/ports"
)

type CreateDropCommand struct {
	Title         string
	Description   string
	ImageURL      string
	Address       string
	Latitude      float64
	Longitude     float64
	RadiusMeters  float64
	TotalQuantity int
	StartTime     time.Time
	EndTime       time.Time
	CreatedBy     string
}

type CreateDropUseCase struct {
	Drops       ports.DropRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateDropUseCase) Execute(ctx context.Context, cmd CreateDropCommand) (entities.Drop, error) {
	logger := application.ResolveLogger(u.Logger)

	dropID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Drop{}, err
	}

	drop, err := entities.NewDrop(
		dropID,
		cmd.Title,
		cmd.Description,
		cmd.ImageURL,
		cmd.Address,
		cmd.Latitude,
		cmd.Longitude,
		cmd.RadiusMeters,
		cmd.TotalQuantity,
		cmd.StartTime,
		cmd.EndTime,
		cmd.CreatedBy,
		u.Clock.Now(),
	)
	if err != nil {
		return entities.Drop{}, err
	}

	if err := u.Drops.CreateDrop(ctx, drop); err != nil {
		logger.Error("drop create failed",
			"event", "drop_create_failed",
			"module", "offers/drop-engine",
			"layer", "application",
			"drop_id", drop.DropID,
			"error", err.Error(),
		)
		return entities.Drop{}, err
	}

	logger.Info("drop created",
		"event", "drop_created",
		"module", "offers/drop-engine",
		"layer", "application",
		"drop_id", drop.DropID,
		"total_quantity", drop.TotalQuantity,
		"created_by", drop.CreatedBy,
	)
	return drop, nil
}
