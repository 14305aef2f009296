package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/application/commands"
	"dropspot/contexts/offers/drop-engine/application/queries"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	httptransport "dropspot/contexts/offers/drop-engine/transport/http"
)

type Handler struct {
	CreateDrop       commands.CreateDropUseCase
	UpdateDrop       commands.UpdateDropUseCase
	DeactivateDrop   commands.DeactivateDropUseCase
	JoinWaitlist     commands.JoinWaitlistUseCase
	LeaveWaitlist    commands.LeaveWaitlistUseCase
	AttemptClaim     commands.AttemptClaimUseCase
	DecideClaim      commands.DecideClaimUseCase
	ListDrops        queries.ListDropsUseCase
	NearbyDrops      queries.NearbyDropsUseCase
	GetDrop          queries.GetDropUseCase
	DropStatus       queries.DropStatusUseCase
	WaitlistPosition queries.WaitlistPositionUseCase
	WaitlistCount    queries.WaitlistCountUseCase
	MyWaitlist       queries.MyWaitlistUseCase
	MyClaims         queries.MyClaimsUseCase
	GetClaim         queries.GetClaimUseCase
	ListClaims       queries.ListClaimsUseCase
	Stats            queries.StatsUseCase
	Logger           *slog.Logger
}

// CreateDropHandler godoc
// @Summary Create a drop
// @Description Creates a geofenced drop with a claim window and stock.
// @Tags drop-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting admin id"
// @Param request body httptransport.CreateDropRequest true "Drop definition"
// @Success 201 {object} httptransport.DropResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /drops [post]
func (h Handler) CreateDropHandler(ctx context.Context, adminID string, req httptransport.CreateDropRequest) (httptransport.DropResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create drop request received",
		"event", "http_create_drop_received",
		"module", "offers/drop-engine",
		"layer", "transport",
	)

	startTime, err := parseTime(req.StartTime)
	if err != nil {
		return httptransport.DropResponse{}, domainerrors.ErrInvalidDrop
	}
	endTime, err := parseTime(req.EndTime)
	if err != nil {
		return httptransport.DropResponse{}, domainerrors.ErrInvalidDrop
	}

	drop, err := h.CreateDrop.Execute(ctx, commands.CreateDropCommand{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		Address:       strings.TrimSpace(req.Address),
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		RadiusMeters:  req.RadiusMeters,
		TotalQuantity: req.TotalQuantity,
		StartTime:     startTime,
		EndTime:       endTime,
		CreatedBy:     strings.TrimSpace(adminID),
	})
	if err != nil {
		return httptransport.DropResponse{}, err
	}
	return httptransport.DropResponse{Item: mapDrop(drop, drop.PhaseAt(h.CreateDrop.Clock.Now()))}, nil
}

// UpdateDropHandler godoc
// @Summary Update a drop
// @Description Applies partial updates; absent fields keep their value.
// @Tags drop-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting admin id"
// @Param drop_id path string true "Drop id"
// @Param request body httptransport.UpdateDropRequest true "Field overrides"
// @Success 200 {object} httptransport.DropResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id} [patch]
func (h Handler) UpdateDropHandler(ctx context.Context, dropID string, req httptransport.UpdateDropRequest) (httptransport.DropResponse, error) {
	cmd := commands.UpdateDropCommand{
		DropID:        strings.TrimSpace(dropID),
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Address:       req.Address,
		RadiusMeters:  req.RadiusMeters,
		TotalQuantity: req.TotalQuantity,
	}
	if req.StartTime != nil {
		parsed, err := parseTime(*req.StartTime)
		if err != nil {
			return httptransport.DropResponse{}, domainerrors.ErrInvalidDrop
		}
		cmd.StartTime = &parsed
	}
	if req.EndTime != nil {
		parsed, err := parseTime(*req.EndTime)
		if err != nil {
			return httptransport.DropResponse{}, domainerrors.ErrInvalidDrop
		}
		cmd.EndTime = &parsed
	}

	drop, err := h.UpdateDrop.Execute(ctx, cmd)
	if err != nil {
		return httptransport.DropResponse{}, err
	}
	return httptransport.DropResponse{Item: mapDrop(drop, drop.PhaseAt(h.UpdateDrop.Clock.Now()))}, nil
}

// DeactivateDropHandler godoc
// @Summary Deactivate a drop
// @Description Soft-deletes a drop; repeated calls are no-ops.
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Acting admin id"
// @Param drop_id path string true "Drop id"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id} [delete]
func (h Handler) DeactivateDropHandler(ctx context.Context, dropID string) error {
	return h.DeactivateDrop.Execute(ctx, strings.TrimSpace(dropID))
}

// ListDropsHandler godoc
// @Summary List drops
// @Description Returns active drops, optionally filtered by derived phase.
// @Tags drop-engine
// @Produce json
// @Param phase query string false "Phase filter: upcoming,active,past"
// @Success 200 {object} httptransport.ListDropsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /drops [get]
func (h Handler) ListDropsHandler(ctx context.Context, phase string) (httptransport.ListDropsResponse, error) {
	phase = strings.TrimSpace(phase)
	switch entities.DropPhase(phase) {
	case "", entities.DropPhaseUpcoming, entities.DropPhaseActive, entities.DropPhasePast:
	default:
		return httptransport.ListDropsResponse{}, domainerrors.ErrInvalidDrop
	}

	items, err := h.ListDrops.Execute(ctx, queries.ListDropsQuery{Phase: entities.DropPhase(phase)})
	if err != nil {
		return httptransport.ListDropsResponse{}, err
	}
	resp := httptransport.ListDropsResponse{Items: make([]httptransport.DropDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapDrop(item.Drop, item.Phase))
	}
	return resp, nil
}

// NearbyDropsHandler godoc
// @Summary List nearby drops
// @Description Returns active drops within radius_km of the caller, closest first.
// @Tags drop-engine
// @Produce json
// @Param lat query number true "Caller latitude"
// @Param lon query number true "Caller longitude"
// @Param radius_km query number false "Search radius in kilometers"
// @Success 200 {object} httptransport.NearbyDropsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /drops/nearby [get]
func (h Handler) NearbyDropsHandler(ctx context.Context, lat float64, lon float64, radiusKm float64) (httptransport.NearbyDropsResponse, error) {
	items, err := h.NearbyDrops.Execute(ctx, queries.NearbyDropsQuery{
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  radiusKm,
	})
	if err != nil {
		return httptransport.NearbyDropsResponse{}, err
	}
	resp := httptransport.NearbyDropsResponse{Items: make([]httptransport.NearbyDropDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, httptransport.NearbyDropDTO{
			DropDTO:        mapDrop(item.Drop, item.Phase),
			DistanceMeters: item.DistanceMeters,
		})
	}
	return resp, nil
}

// GetDropHandler godoc
// @Summary Get drop details
// @Description Returns one drop by id with its derived phase.
// @Tags drop-engine
// @Produce json
// @Param drop_id path string true "Drop id"
// @Success 200 {object} httptransport.DropResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id} [get]
func (h Handler) GetDropHandler(ctx context.Context, dropID string) (httptransport.DropResponse, error) {
	item, err := h.GetDrop.Execute(ctx, strings.TrimSpace(dropID))
	if err != nil {
		return httptransport.DropResponse{}, err
	}
	return httptransport.DropResponse{Item: mapDrop(item.Drop, item.Phase)}, nil
}

// DropStatusHandler godoc
// @Summary Get caller status for a drop
// @Description Returns the drop plus the caller's waitlist standing and claim.
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Param drop_id path string true "Drop id"
// @Success 200 {object} httptransport.DropStatusResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id}/my-status [get]
func (h Handler) DropStatusHandler(ctx context.Context, dropID string, userID string) (httptransport.DropStatusResponse, error) {
	status, err := h.DropStatus.Execute(ctx, strings.TrimSpace(dropID), strings.TrimSpace(userID))
	if err != nil {
		return httptransport.DropStatusResponse{}, err
	}
	resp := httptransport.DropStatusResponse{
		Item:          mapDrop(status.Drop, status.Phase),
		InWaitlist:    status.InWaitlist,
		Position:      status.Position,
		WaitlistCount: status.WaitlistCount,
	}
	if status.Claim != nil {
		claim := mapClaim(*status.Claim)
		resp.Claim = &claim
	}
	return resp, nil
}

// JoinWaitlistHandler godoc
// @Summary Join a drop waitlist
// @Description Adds the caller to the waitlist of a joinable drop.
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Param drop_id path string true "Drop id"
// @Success 201 {object} httptransport.JoinWaitlistResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id}/waitlist [post]
func (h Handler) JoinWaitlistHandler(ctx context.Context, dropID string, userID string) (httptransport.JoinWaitlistResponse, error) {
	result, err := h.JoinWaitlist.Execute(ctx, commands.JoinWaitlistCommand{
		DropID: strings.TrimSpace(dropID),
		UserID: strings.TrimSpace(userID),
	})
	if err != nil {
		return httptransport.JoinWaitlistResponse{}, err
	}
	return httptransport.JoinWaitlistResponse{
		DropID:   result.Entry.DropID,
		UserID:   result.Entry.UserID,
		Position: result.Position,
		JoinedAt: result.Entry.JoinedAt.UTC().Format(time.RFC3339),
	}, nil
}

// LeaveWaitlistHandler godoc
// @Summary Leave a drop waitlist
// @Description Removes the caller's waitlist entry unless a pending claim pins it.
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Param drop_id path string true "Drop id"
// @Success 200 {object} httptransport.LeaveWaitlistResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id}/waitlist [delete]
func (h Handler) LeaveWaitlistHandler(ctx context.Context, dropID string, userID string) (httptransport.LeaveWaitlistResponse, error) {
	err := h.LeaveWaitlist.Execute(ctx, commands.LeaveWaitlistCommand{
		DropID: strings.TrimSpace(dropID),
		UserID: strings.TrimSpace(userID),
	})
	if err != nil {
		return httptransport.LeaveWaitlistResponse{}, err
	}
	return httptransport.LeaveWaitlistResponse{
		DropID: strings.TrimSpace(dropID),
		UserID: strings.TrimSpace(userID),
		Left:   true,
	}, nil
}

// WaitlistPositionHandler godoc
// @Summary Get caller waitlist position
// @Description Returns the caller's 1-based rank in join order.
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Param drop_id path string true "Drop id"
// @Success 200 {object} httptransport.WaitlistPositionResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id}/waitlist/position [get]
func (h Handler) WaitlistPositionHandler(ctx context.Context, dropID string, userID string) (httptransport.WaitlistPositionResponse, error) {
	result, err := h.WaitlistPosition.Execute(ctx, strings.TrimSpace(dropID), strings.TrimSpace(userID))
	if err != nil {
		return httptransport.WaitlistPositionResponse{}, err
	}
	return httptransport.WaitlistPositionResponse{
		DropID:        result.DropID,
		UserID:        result.UserID,
		Position:      result.Position,
		WaitlistCount: result.Total,
	}, nil
}

// WaitlistCountHandler godoc
// @Summary Get drop waitlist size
// @Tags drop-engine
// @Produce json
// @Param drop_id path string true "Drop id"
// @Success 200 {object} httptransport.WaitlistCountResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id}/waitlist/count [get]
func (h Handler) WaitlistCountHandler(ctx context.Context, dropID string) (httptransport.WaitlistCountResponse, error) {
	count, err := h.WaitlistCount.Execute(ctx, strings.TrimSpace(dropID))
	if err != nil {
		return httptransport.WaitlistCountResponse{}, err
	}
	return httptransport.WaitlistCountResponse{
		DropID:        strings.TrimSpace(dropID),
		WaitlistCount: count,
	}, nil
}

// MyWaitlistHandler godoc
// @Summary List caller waitlist memberships
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Success 200 {object} httptransport.MyWaitlistResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /me/waitlist [get]
func (h Handler) MyWaitlistHandler(ctx context.Context, userID string) (httptransport.MyWaitlistResponse, error) {
	items, err := h.MyWaitlist.Execute(ctx, strings.TrimSpace(userID))
	if err != nil {
		return httptransport.MyWaitlistResponse{}, err
	}
	resp := httptransport.MyWaitlistResponse{Items: make([]httptransport.MyWaitlistItemDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, httptransport.MyWaitlistItemDTO{
			DropID:   item.Entry.DropID,
			Position: item.Position,
			JoinedAt: item.Entry.JoinedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

// AttemptClaimHandler godoc
// @Summary Attempt a claim
// @Description Records a pending claim for a waitlisted caller inside the geofence.
// @Tags drop-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Param drop_id path string true "Drop id"
// @Param request body httptransport.AttemptClaimRequest true "Claim attempt"
// @Success 201 {object} httptransport.ClaimResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /drops/{drop_id}/claims [post]
func (h Handler) AttemptClaimHandler(ctx context.Context, dropID string, userID string, req httptransport.AttemptClaimRequest) (httptransport.ClaimResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("claim attempt received",
		"event", "http_claim_attempt_received",
		"module", "offers/drop-engine",
		"layer", "transport",
		"drop_id", dropID,
	)

	claim, err := h.AttemptClaim.Execute(ctx, commands.AttemptClaimCommand{
		DropID:         strings.TrimSpace(dropID),
		UserID:         strings.TrimSpace(userID),
		Quantity:       req.Quantity,
		ClaimLatitude:  req.Latitude,
		ClaimLongitude: req.Longitude,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Item: mapClaim(claim)}, nil
}

// MyClaimsHandler godoc
// @Summary List caller claims
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Success 200 {object} httptransport.ListClaimsResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /me/claims [get]
func (h Handler) MyClaimsHandler(ctx context.Context, userID string) (httptransport.ListClaimsResponse, error) {
	claims, err := h.MyClaims.Execute(ctx, strings.TrimSpace(userID))
	if err != nil {
		return httptransport.ListClaimsResponse{}, err
	}
	return httptransport.ListClaimsResponse{Items: mapClaims(claims)}, nil
}

// GetClaimHandler godoc
// @Summary Get claim details
// @Description Returns one claim; non-admin callers see only their own.
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Caller user id"
// @Param claim_id path string true "Claim id"
// @Success 200 {object} httptransport.ClaimResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /claims/{claim_id} [get]
func (h Handler) GetClaimHandler(ctx context.Context, claimID string, callerID string, isAdmin bool) (httptransport.ClaimResponse, error) {
	claim, err := h.GetClaim.Execute(ctx, strings.TrimSpace(claimID), strings.TrimSpace(callerID), isAdmin)
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Item: mapClaim(claim)}, nil
}

// ListClaimsHandler godoc
// @Summary List claims for review
// @Description Admin view of claims, newest first, with filters and paging.
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Acting admin id"
// @Param drop_id query string false "Drop filter"
// @Param status query string false "Status filter: pending,approved,rejected"
// @Param offset query int false "Page offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httptransport.ListClaimsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /admin/claims [get]
func (h Handler) ListClaimsHandler(ctx context.Context, dropID string, status string, offset int, limit int) (httptransport.ListClaimsResponse, error) {
	status = strings.TrimSpace(status)
	switch entities.ClaimStatus(status) {
	case "", entities.ClaimStatusPending, entities.ClaimStatusApproved, entities.ClaimStatusRejected:
	default:
		return httptransport.ListClaimsResponse{}, domainerrors.ErrInvalidClaimRequest
	}

	claims, err := h.ListClaims.Execute(ctx, queries.ListClaimsQuery{
		DropID: strings.TrimSpace(dropID),
		Status: entities.ClaimStatus(status),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return httptransport.ListClaimsResponse{}, err
	}
	return httptransport.ListClaimsResponse{Items: mapClaims(claims)}, nil
}

// DecideClaimHandler godoc
// @Summary Decide a pending claim
// @Description Approves or rejects a pending claim; approvals reserve stock and may auto-reject when stock ran out.
// @Tags drop-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting admin id"
// @Param claim_id path string true "Claim id"
// @Param request body httptransport.DecideClaimRequest true "Decision"
// @Success 200 {object} httptransport.DecideClaimResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /admin/claims/{claim_id}/decision [post]
func (h Handler) DecideClaimHandler(ctx context.Context, claimID string, adminID string, req httptransport.DecideClaimRequest) (httptransport.DecideClaimResponse, error) {
	result, err := h.DecideClaim.Execute(ctx, commands.DecideClaimCommand{
		ClaimID: strings.TrimSpace(claimID),
		AdminID: strings.TrimSpace(adminID),
		Approve: req.Approve,
	})
	if err != nil {
		return httptransport.DecideClaimResponse{}, err
	}
	return httptransport.DecideClaimResponse{
		Item:         mapClaim(result.Claim),
		AutoRejected: result.AutoRejected,
	}, nil
}

// StatsHandler godoc
// @Summary Engine statistics
// @Tags drop-engine
// @Produce json
// @Param X-User-Id header string true "Acting admin id"
// @Success 200 {object} httptransport.StatsResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /admin/stats [get]
func (h Handler) StatsHandler(ctx context.Context) (httptransport.StatsResponse, error) {
	stats, err := h.Stats.Execute(ctx)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	return httptransport.StatsResponse{
		TotalDrops:      stats.TotalDrops,
		UpcomingDrops:   stats.UpcomingDrops,
		ActiveDrops:     stats.ActiveDrops,
		PastDrops:       stats.PastDrops,
		WaitlistEntries: stats.WaitlistEntries,
		PendingClaims:   stats.PendingClaims,
		ApprovedClaims:  stats.ApprovedClaims,
		RejectedClaims:  stats.RejectedClaims,
		UnitsApproved:   stats.UnitsApproved,
	}, nil
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func mapDrop(drop entities.Drop, phase entities.DropPhase) httptransport.DropDTO {
	return httptransport.DropDTO{
		DropID:            drop.DropID,
		Title:             drop.Title,
		Description:       drop.Description,
		ImageURL:          drop.ImageURL,
		Address:           drop.Address,
		Latitude:          drop.Latitude,
		Longitude:         drop.Longitude,
		RadiusMeters:      drop.RadiusMeters,
		TotalQuantity:     drop.TotalQuantity,
		RemainingQuantity: drop.RemainingQuantity,
		StartTime:         drop.StartTime.UTC().Format(time.RFC3339),
		EndTime:           drop.EndTime.UTC().Format(time.RFC3339),
		IsActive:          drop.IsActive,
		Phase:             string(phase),
		CreatedBy:         drop.CreatedBy,
		CreatedAt:         drop.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         drop.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapClaim(claim entities.Claim) httptransport.ClaimDTO {
	dto := httptransport.ClaimDTO{
		ClaimID:        claim.ClaimID,
		DropID:         claim.DropID,
		UserID:         claim.UserID,
		Quantity:       claim.Quantity,
		Status:         string(claim.Status),
		DistanceMeters: claim.DistanceMeters,
		RejectReason:   claim.RejectReason,
		CreatedAt:      claim.CreatedAt.UTC().Format(time.RFC3339),
	}
	// The pickup code is only meaningful once a claim is approved.
	if claim.Status == entities.ClaimStatusApproved {
		dto.VerificationCode = claim.VerificationCode
	}
	if claim.DecidedAt != nil {
		dto.DecidedAt = claim.DecidedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func mapClaims(claims []entities.Claim) []httptransport.ClaimDTO {
	items := make([]httptransport.ClaimDTO, 0, len(claims))
	for _, claim := range claims {
		items = append(items, mapClaim(claim))
	}
	return items
}
