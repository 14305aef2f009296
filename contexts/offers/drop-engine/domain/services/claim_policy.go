package services

import (
	"time"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
)

// EvaluateClaimAdmission runs the claim admission checks in order: drop
// phase, waitlist membership, duplicate pending claim, geofence, stock
// pre-check. Returns the computed distance for successful admissions so the
// claim record can carry it. Stock here is only a fast pre-check; the
// authoritative reservation happens at approval.
func EvaluateClaimAdmission(
	drop entities.Drop,
	inWaitlist bool,
	hasPendingClaim bool,
	quantity int,
	claimLat float64,
	claimLon float64,
	now time.Time,
) (float64, error) {
	if quantity < 1 {
		return 0, domainerrors.ErrInvalidClaimRequest
	}
	if !drop.ActiveAt(now) {
		return 0, domainerrors.ErrDropNotActive
	}
	if !inWaitlist {
		return 0, domainerrors.ErrNotInWaitlist
	}
	if hasPendingClaim {
		return 0, domainerrors.ErrDuplicateClaim
	}

	distance := DistanceMeters(claimLat, claimLon, drop.Latitude, drop.Longitude)
	if distance > EffectiveRadius(drop.RadiusMeters) {
		return distance, domainerrors.ErrOutOfRange
	}

	if drop.RemainingQuantity <= 0 {
		return distance, domainerrors.ErrOutOfStock
	}
	return distance, nil
}
