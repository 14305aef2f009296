package queries

import (
	"context"
	"log/slog"
	"sort"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	"dropspot/contexts/offers/drop-engine/domain/services"
	"dropspot/contexts/offers/drop-engine/ports"
)

type ListDropsQuery struct {
	// Phase filters by derived phase; empty returns every active-flagged
	// drop regardless of window.
	Phase entities.DropPhase
}

type DropWithPhase struct {
	Drop  entities.Drop
	Phase entities.DropPhase
}

type ListDropsUseCase struct {
	Drops  ports.DropRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u ListDropsUseCase) Execute(ctx context.Context, query ListDropsQuery) ([]DropWithPhase, error) {
	drops, err := u.Drops.ListDrops(ctx, ports.DropListFilter{})
	if err != nil {
		return nil, err
	}
	now := u.Clock.Now()

	items := make([]DropWithPhase, 0, len(drops))
	for _, drop := range drops {
		phase := drop.PhaseAt(now)
		if query.Phase != "" && phase != query.Phase {
			continue
		}
		items = append(items, DropWithPhase{Drop: drop, Phase: phase})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Drop.StartTime.Equal(items[j].Drop.StartTime) {
			return items[i].Drop.DropID < items[j].Drop.DropID
		}
		return items[i].Drop.StartTime.Before(items[j].Drop.StartTime)
	})
	return items, nil
}

type NearbyDropsQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

type NearbyDrop struct {
	Drop           entities.Drop
	Phase          entities.DropPhase
	DistanceMeters float64
}

type NearbyDropsUseCase struct {
	Drops  ports.DropRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute returns active drops within the search radius of the caller,
// closest first.
func (u NearbyDropsUseCase) Execute(ctx context.Context, query NearbyDropsQuery) ([]NearbyDrop, error) {
	logger := application.ResolveLogger(u.Logger)

	radiusKm := query.RadiusKm
	if radiusKm <= 0 {
		radiusKm = services.DefaultRadiusMeters / 1000
	}
	drops, err := u.Drops.ListDrops(ctx, ports.DropListFilter{})
	if err != nil {
		return nil, err
	}
	now := u.Clock.Now()

	var items []NearbyDrop
	for _, drop := range drops {
		phase := drop.PhaseAt(now)
		if phase != entities.DropPhaseActive {
			continue
		}
		distance := services.DistanceMeters(query.Latitude, query.Longitude, drop.Latitude, drop.Longitude)
		if distance > radiusKm*1000 {
			continue
		}
		items = append(items, NearbyDrop{Drop: drop, Phase: phase, DistanceMeters: distance})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].DistanceMeters == items[j].DistanceMeters {
			return items[i].Drop.DropID < items[j].Drop.DropID
		}
		return items[i].DistanceMeters < items[j].DistanceMeters
	})

	logger.Debug("nearby drops resolved",
		"event", "nearby_drops_resolved",
		"module", "offers/drop-engine",
		"layer", "application",
		"radius_km", radiusKm,
		"matches", len(items),
	)
	return items, nil
}
