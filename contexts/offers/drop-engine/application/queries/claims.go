package queries

import (
	"context"
	"log/slog"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

type MyClaimsUseCase struct {
	Claims ports.ClaimRepository
	Logger *slog.Logger
}

func (u MyClaimsUseCase) Execute(ctx context.Context, userID string) ([]entities.Claim, error) {
	return u.Claims.ListClaimsByUser(ctx, userID)
}

type GetClaimUseCase struct {
	Claims ports.ClaimRepository
	Logger *slog.Logger
}

// Execute returns one claim; only its owner or an admin may read it, since
// the verification code is redemption credential material.
func (u GetClaimUseCase) Execute(ctx context.Context, claimID string, callerID string, isAdmin bool) (entities.Claim, error) {
	claim, err := u.Claims.GetClaim(ctx, claimID)
	if err != nil {
		return entities.Claim{}, err
	}
	if !isAdmin && claim.UserID != callerID {
		return entities.Claim{}, domainerrors.ErrNotClaimOwner
	}
	return claim, nil
}

type ListClaimsQuery struct {
	DropID string
	Status entities.ClaimStatus
	Offset int
	Limit  int
}

type ListClaimsUseCase struct {
	Claims ports.ClaimRepository
	Logger *slog.Logger
}

func (u ListClaimsUseCase) Execute(ctx context.Context, query ListClaimsQuery) ([]entities.Claim, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	return u.Claims.ListClaims(ctx, ports.ClaimListFilter{
		DropID: query.DropID,
		Status: query.Status,
		Offset: offset,
		Limit:  limit,
	})
}
