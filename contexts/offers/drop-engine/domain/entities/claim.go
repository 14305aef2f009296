package entities

import (
	"strings"
	"time"

	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
)

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// RejectReasonInsufficientStock marks claims auto-rejected because approval
// raced against exhausted stock rather than by reviewer judgement.
const RejectReasonInsufficientStock = "insufficient_stock"

type Claim struct {
	ClaimID          string
	DropID           string
	UserID           string
	Quantity         int
	Status           ClaimStatus
	ClaimLatitude    float64
	ClaimLongitude   float64
	DistanceMeters   float64
	VerificationCode string
	RejectReason     string
	CreatedAt        time.Time
	DecidedAt        *time.Time
	UpdatedAt        time.Time
}

func NewClaim(
	claimID string,
	dropID string,
	userID string,
	quantity int,
	claimLatitude float64,
	claimLongitude float64,
	distanceMeters float64,
	verificationCode string,
	createdAt time.Time,
) (Claim, error) {
	if strings.TrimSpace(claimID) == "" ||
		strings.TrimSpace(dropID) == "" ||
		strings.TrimSpace(userID) == "" ||
		strings.TrimSpace(verificationCode) == "" {
		return Claim{}, domainerrors.ErrInvalidClaimRequest
	}
	if quantity < 1 {
		return Claim{}, domainerrors.ErrInvalidClaimRequest
	}

	return Claim{
		ClaimID:          claimID,
		DropID:           dropID,
		UserID:           userID,
		Quantity:         quantity,
		Status:           ClaimStatusPending,
		ClaimLatitude:    claimLatitude,
		ClaimLongitude:   claimLongitude,
		DistanceMeters:   distanceMeters,
		VerificationCode: verificationCode,
		CreatedAt:        createdAt.UTC(),
		UpdatedAt:        createdAt.UTC(),
	}, nil
}

func (c Claim) Decided() bool {
	return c.Status != ClaimStatusPending
}

// Decide returns a terminal copy of the claim. Approve/reject of an already
// decided claim is the caller's error to surface; this only stamps state.
func (c Claim) Decide(status ClaimStatus, reason string, decidedAt time.Time) Claim {
	decided := decidedAt.UTC()
	c.Status = status
	c.RejectReason = reason
	c.DecidedAt = &decided
	c.UpdatedAt = decided
	return c
}
