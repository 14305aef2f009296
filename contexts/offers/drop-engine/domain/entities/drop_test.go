package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
)

func TestNewDropValidation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	end := now.Add(2 * time.Hour)

	cases := []struct {
		name      string
		dropID    string
		title     string
		total     int
		start     time.Time
		end       time.Time
		createdBy string
		wantErr   bool
	}{
		{"valid", "drop-1", "Sneaker Drop", 10, start, end, "admin-1", false},
		{"zero stock allowed", "drop-2", "Empty Drop", 0, start, end, "admin-1", false},
		{"missing id", "", "Sneaker Drop", 10, start, end, "admin-1", true},
		{"missing title", "drop-3", "  ", 10, start, end, "admin-1", true},
		{"missing creator", "drop-4", "Sneaker Drop", 10, start, end, "", true},
		{"negative stock", "drop-5", "Sneaker Drop", -1, start, end, "admin-1", true},
		{"end before start", "drop-6", "Sneaker Drop", 10, end, start, "admin-1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drop, err := NewDrop(tc.dropID, tc.title, "", "", "", 40.7, -74.0, 100, tc.total, tc.start, tc.end, tc.createdBy, now)
			if tc.wantErr {
				if !errors.Is(err, domainerrors.ErrInvalidDrop) {
					t.Fatalf("expected invalid drop, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid drop, got %v", err)
			}
			if drop.RemainingQuantity != tc.total {
				t.Fatalf("expected remaining %d, got %d", tc.total, drop.RemainingQuantity)
			}
			if !drop.IsActive {
				t.Fatal("expected new drop to be active")
			}
		})
	}
}

func TestDropPhaseAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	drop := Drop{
		DropID:    "drop-1",
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}

	cases := []struct {
		name     string
		now      time.Time
		inactive bool
		want     DropPhase
	}{
		{"before window", start.Add(-time.Minute), false, DropPhaseUpcoming},
		{"at start", start, false, DropPhaseActive},
		{"inside window", start.Add(time.Hour), false, DropPhaseActive},
		{"at end", end, false, DropPhaseActive},
		{"after window", end.Add(time.Second), false, DropPhasePast},
		{"deactivated mid-window", start.Add(time.Hour), true, DropPhasePast},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := drop
			d.IsActive = !tc.inactive
			if got := d.PhaseAt(tc.now); got != tc.want {
				t.Fatalf("expected phase %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClaimDecideIsTerminal(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	claim, err := NewClaim("claim-1", "drop-1", "user-1", 1, 40.7, -74.0, 12.5, "code-1", createdAt)
	if err != nil {
		t.Fatalf("new claim failed: %v", err)
	}
	if claim.Decided() {
		t.Fatal("fresh claim must be pending")
	}

	decidedAt := createdAt.Add(time.Minute)
	rejected := claim.Decide(ClaimStatusRejected, RejectReasonInsufficientStock, decidedAt)
	if !rejected.Decided() {
		t.Fatal("decided claim must report terminal state")
	}
	if rejected.RejectReason != RejectReasonInsufficientStock {
		t.Fatalf("expected reject reason, got %q", rejected.RejectReason)
	}
	if rejected.DecidedAt == nil || !rejected.DecidedAt.Equal(decidedAt) {
		t.Fatalf("expected decided-at %v, got %v", decidedAt, rejected.DecidedAt)
	}
	// The original value stays pending.
	if claim.Decided() {
		t.Fatal("Decide must not mutate the receiver")
	}
}
