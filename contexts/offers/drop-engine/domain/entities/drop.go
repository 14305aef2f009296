package entities

import (
	"strings"
	"time"

	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
)

// DropPhase is the temporal state derived from the drop window and the
// operator toggle. It is never stored; callers recompute it against now.
type DropPhase string

const (
	DropPhaseUpcoming DropPhase = "upcoming"
	DropPhaseActive   DropPhase = "active"
	DropPhasePast     DropPhase = "past"
)

type Drop struct {
	DropID            string
	Title             string
	Description       string
	ImageURL          string
	Address           string
	Latitude          float64
	Longitude         float64
	RadiusMeters      float64
	TotalQuantity     int
	RemainingQuantity int
	StartTime         time.Time
	EndTime           time.Time
	IsActive          bool
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewDrop(
	dropID string,
	title string,
	description string,
	imageURL string,
	address string,
	latitude float64,
	longitude float64,
	radiusMeters float64,
	totalQuantity int,
	startTime time.Time,
	endTime time.Time,
	createdBy string,
	createdAt time.Time,
) (Drop, error) {
	if strings.TrimSpace(dropID) == "" ||
		strings.TrimSpace(title) == "" ||
		strings.TrimSpace(createdBy) == "" {
		return Drop{}, domainerrors.ErrInvalidDrop
	}
	if totalQuantity < 0 {
		return Drop{}, domainerrors.ErrInvalidDrop
	}
	if !endTime.After(startTime) {
		return Drop{}, domainerrors.ErrInvalidDrop
	}

	return Drop{
		DropID:            dropID,
		Title:             title,
		Description:       description,
		ImageURL:          imageURL,
		Address:           address,
		Latitude:          latitude,
		Longitude:         longitude,
		RadiusMeters:      radiusMeters,
		TotalQuantity:     totalQuantity,
		RemainingQuantity: totalQuantity,
		StartTime:         startTime.UTC(),
		EndTime:           endTime.UTC(),
		IsActive:          true,
		CreatedBy:         createdBy,
		CreatedAt:         createdAt.UTC(),
		UpdatedAt:         createdAt.UTC(),
	}, nil
}

// PhaseAt derives the lifecycle phase from the caller-supplied instant.
// A deactivated drop is past regardless of its window.
func (d Drop) PhaseAt(now time.Time) DropPhase {
	if !d.IsActive {
		return DropPhasePast
	}
	instant := now.UTC()
	if instant.Before(d.StartTime) {
		return DropPhaseUpcoming
	}
	if instant.After(d.EndTime) {
		return DropPhasePast
	}
	return DropPhaseActive
}

func (d Drop) ActiveAt(now time.Time) bool {
	return d.PhaseAt(now) == DropPhaseActive
}
