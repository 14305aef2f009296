package dropengine

import (
	"log/slog"

	httpadapter "dropspot/contexts/offers/drop-engine/adapters/http"
	"dropspot/contexts/offers/drop-engine/adapters/memory"
	"dropspot/contexts/offers/drop-engine/application/commands"
	"dropspot/contexts/offers/drop-engine/application/queries"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	"dropspot/contexts/offers/drop-engine/ports"
)

// Module is the composition surface for the drop engine.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Drops         ports.DropRepository
	Stock         ports.StockRepository
	Waitlist      ports.WaitlistRepository
	Claims        ports.ClaimRepository
	Stats         ports.StatsRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	CodeGenerator ports.CodeGenerator
	Logger        *slog.Logger
}

// NewModule wires the drop engine use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	createDrop := commands.CreateDropUseCase{
		Drops:       deps.Drops,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateDrop := commands.UpdateDropUseCase{
		Drops:  deps.Drops,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	deactivateDrop := commands.DeactivateDropUseCase{
		Drops:  deps.Drops,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	joinWaitlist := commands.JoinWaitlistUseCase{
		Drops:       deps.Drops,
		Waitlist:    deps.Waitlist,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	leaveWaitlist := commands.LeaveWaitlistUseCase{
		Waitlist:    deps.Waitlist,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	attemptClaim := commands.AttemptClaimUseCase{
		Drops:         deps.Drops,
		Waitlist:      deps.Waitlist,
		Claims:        deps.Claims,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		CodeGenerator: deps.CodeGenerator,
		Logger:        deps.Logger,
	}
	decideClaim := commands.DecideClaimUseCase{
		Claims:      deps.Claims,
		Stock:       deps.Stock,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}

	listDrops := queries.ListDropsUseCase{
		Drops:  deps.Drops,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	nearbyDrops := queries.NearbyDropsUseCase{
		Drops:  deps.Drops,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	getDrop := queries.GetDropUseCase{
		Drops: deps.Drops,
		Clock: deps.Clock,
	}
	dropStatus := queries.DropStatusUseCase{
		Drops:    deps.Drops,
		Waitlist: deps.Waitlist,
		Claims:   deps.Claims,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	waitlistPosition := queries.WaitlistPositionUseCase{
		Waitlist: deps.Waitlist,
		Logger:   deps.Logger,
	}
	waitlistCount := queries.WaitlistCountUseCase{
		Drops:    deps.Drops,
		Waitlist: deps.Waitlist,
		Logger:   deps.Logger,
	}
	myWaitlist := queries.MyWaitlistUseCase{
		Waitlist: deps.Waitlist,
		Logger:   deps.Logger,
	}
	myClaims := queries.MyClaimsUseCase{
		Claims: deps.Claims,
		Logger: deps.Logger,
	}
	getClaim := queries.GetClaimUseCase{
		Claims: deps.Claims,
		Logger: deps.Logger,
	}
	listClaims := queries.ListClaimsUseCase{
		Claims: deps.Claims,
		Logger: deps.Logger,
	}
	stats := queries.StatsUseCase{
		Drops:  deps.Drops,
		Stats:  deps.Stats,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		CreateDrop:       createDrop,
		UpdateDrop:       updateDrop,
		DeactivateDrop:   deactivateDrop,
		JoinWaitlist:     joinWaitlist,
		LeaveWaitlist:    leaveWaitlist,
		AttemptClaim:     attemptClaim,
		DecideClaim:      decideClaim,
		ListDrops:        listDrops,
		NearbyDrops:      nearbyDrops,
		GetDrop:          getDrop,
		DropStatus:       dropStatus,
		WaitlistPosition: waitlistPosition,
		WaitlistCount:    waitlistCount,
		MyWaitlist:       myWaitlist,
		MyClaims:         myClaims,
		GetClaim:         getClaim,
		ListClaims:       listClaims,
		Stats:            stats,
		Logger:           deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule wires the drop engine against in-memory adapters.
func NewInMemoryModule(seedDrops []entities.Drop, logger *slog.Logger) Module {
	store := memory.NewStore(seedDrops, logger)
	module := NewModule(Dependencies{
		Drops:         store,
		Stock:         store,
		Waitlist:      store,
		Claims:        store,
		Stats:         store,
		Clock:         store,
		IDGenerator:   store,
		CodeGenerator: store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
