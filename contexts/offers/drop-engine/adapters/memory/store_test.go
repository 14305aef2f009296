package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

func seedDrop(total int) entities.Drop {
	now := time.Now().UTC()
	return entities.Drop{
		DropID:            "drop-1",
		Title:             "Seed Drop",
		Latitude:          40.7128,
		Longitude:         -74.006,
		RadiusMeters:      200,
		TotalQuantity:     total,
		RemainingQuantity: total,
		StartTime:         now.Add(-time.Hour),
		EndTime:           now.Add(time.Hour),
		IsActive:          true,
		CreatedBy:         "admin-1",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func joinEvent(id string, userID string) ports.WaitlistEvent {
	return ports.WaitlistEvent{
		EventID:    id,
		EventType:  "drop.waitlist_joined",
		DropID:     "drop-1",
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

func TestJoinWaitlistAssignsMonotonicSequences(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(10)}, nil)
	now := time.Now().UTC()

	var wg sync.WaitGroup
	const joiners = 50
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			entry, _ := entities.NewWaitlistEntry(fmt.Sprintf("entry-%d", i), "drop-1", userID, now)
			if _, err := store.JoinWaitlist(context.Background(), entry, joinEvent(fmt.Sprintf("evt-%d", i), userID)); err != nil {
				t.Errorf("join %s failed: %v", userID, err)
			}
		}(i)
	}
	wg.Wait()

	entries, err := store.ListWaitlist(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("list waitlist failed: %v", err)
	}
	if len(entries) != joiners {
		t.Fatalf("expected %d entries, got %d", joiners, len(entries))
	}
	seen := make(map[uint64]bool, joiners)
	for i, entry := range entries {
		if seen[entry.Sequence] {
			t.Fatalf("duplicate sequence %d", entry.Sequence)
		}
		seen[entry.Sequence] = true
		if i > 0 && entries[i].Before(entries[i-1]) {
			t.Fatalf("entries out of order at index %d", i)
		}
	}
}

func TestJoinWaitlistDuplicateUser(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(10)}, nil)
	now := time.Now().UTC()

	entry, _ := entities.NewWaitlistEntry("entry-1", "drop-1", "user-1", now)
	if _, err := store.JoinWaitlist(context.Background(), entry, joinEvent("evt-1", "user-1")); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	again, _ := entities.NewWaitlistEntry("entry-2", "drop-1", "user-1", now.Add(time.Second))
	if _, err := store.JoinWaitlist(context.Background(), again, joinEvent("evt-2", "user-1")); !errors.Is(err, domainerrors.ErrAlreadyJoined) {
		t.Fatalf("expected already joined, got %v", err)
	}
}

func TestReserveNeverOversells(t *testing.T) {
	const total = 5
	store := NewStore([]entities.Drop{seedDrop(total)}, nil)

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Reserve(context.Background(), "drop-1", 1)
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domainerrors.ErrInsufficientStock):
			losses++
		default:
			t.Fatalf("unexpected reserve error: %v", err)
		}
	}
	if wins != total {
		t.Fatalf("expected %d successful reservations, got %d", total, wins)
	}
	if losses != 20-total {
		t.Fatalf("expected %d losers, got %d", 20-total, losses)
	}

	drop, err := store.GetDrop(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("get drop failed: %v", err)
	}
	if drop.RemainingQuantity != 0 {
		t.Fatalf("expected zero remaining, got %d", drop.RemainingQuantity)
	}
}

func TestRestoreCappedAtTotal(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(5)}, nil)

	if err := store.Reserve(context.Background(), "drop-1", 2); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if err := store.Restore(context.Background(), "drop-1", 10); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	drop, err := store.GetDrop(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("get drop failed: %v", err)
	}
	if drop.RemainingQuantity != drop.TotalQuantity {
		t.Fatalf("expected remaining capped at total %d, got %d", drop.TotalQuantity, drop.RemainingQuantity)
	}
}

func TestFinalizeClaimRemovesWaitlistEntry(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(5)}, nil)
	now := time.Now().UTC()

	entry, _ := entities.NewWaitlistEntry("entry-1", "drop-1", "user-1", now)
	if _, err := store.JoinWaitlist(context.Background(), entry, joinEvent("evt-1", "user-1")); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	claim, _ := entities.NewClaim("claim-1", "drop-1", "user-1", 1, 40.7128, -74.006, 10, "code-1", now)
	attempt := ports.ClaimEvent{
		EventID:    "evt-claim-1",
		EventType:  "drop.claim_attempted",
		ClaimID:    "claim-1",
		DropID:     "drop-1",
		UserID:     "user-1",
		Quantity:   1,
		Status:     string(entities.ClaimStatusPending),
		OccurredAt: now,
	}
	if err := store.CreatePendingClaim(context.Background(), claim, attempt); err != nil {
		t.Fatalf("create pending claim failed: %v", err)
	}

	decided := claim.Decide(entities.ClaimStatusApproved, "", now.Add(time.Minute))
	decision := attempt
	decision.EventID = "evt-claim-2"
	decision.EventType = "drop.claim_decided"
	decision.Status = string(entities.ClaimStatusApproved)
	if err := store.FinalizeClaim(context.Background(), decided, decision); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if _, ok, _ := store.GetWaitlistEntry(context.Background(), "drop-1", "user-1"); ok {
		t.Fatal("expected waitlist entry removed after decision")
	}
	if _, pending, _ := store.GetPendingClaim(context.Background(), "drop-1", "user-1"); pending {
		t.Fatal("expected no pending claim after decision")
	}

	if err := store.FinalizeClaim(context.Background(), decided, decision); !errors.Is(err, domainerrors.ErrClaimNotPending) {
		t.Fatalf("expected claim not pending on replay, got %v", err)
	}
}

func TestCreatePendingClaimDuplicate(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(5)}, nil)
	now := time.Now().UTC()

	claim, _ := entities.NewClaim("claim-1", "drop-1", "user-1", 1, 40.7128, -74.006, 10, "code-1", now)
	event := ports.ClaimEvent{EventID: "evt-1", EventType: "drop.claim_attempted", ClaimID: "claim-1", DropID: "drop-1", UserID: "user-1", Quantity: 1, Status: string(entities.ClaimStatusPending), OccurredAt: now}
	if err := store.CreatePendingClaim(context.Background(), claim, event); err != nil {
		t.Fatalf("create pending claim failed: %v", err)
	}

	second, _ := entities.NewClaim("claim-2", "drop-1", "user-1", 1, 40.7128, -74.006, 10, "code-2", now)
	dup := event
	dup.EventID = "evt-2"
	dup.ClaimID = "claim-2"
	if err := store.CreatePendingClaim(context.Background(), second, dup); !errors.Is(err, domainerrors.ErrDuplicateClaim) {
		t.Fatalf("expected duplicate claim, got %v", err)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(5)}, nil)
	now := time.Now().UTC()

	entry, _ := entities.NewWaitlistEntry("entry-1", "drop-1", "user-1", now)
	if _, err := store.JoinWaitlist(context.Background(), entry, joinEvent("evt-1", "user-1")); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending message, got %d", len(pending))
	}
	if pending[0].EventType != "drop.waitlist_joined" {
		t.Fatalf("unexpected event type %s", pending[0].EventType)
	}

	if err := store.MarkOutboxSent(context.Background(), pending[0].OutboxID, now.Add(time.Second)); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected drained outbox, got %d", len(pending))
	}
}

func TestLeaveWaitlistBlockedByRacingPendingClaim(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(5)}, nil)
	now := time.Now().UTC()

	entry, _ := entities.NewWaitlistEntry("entry-1", "drop-1", "user-1", now)
	if _, err := store.JoinWaitlist(context.Background(), entry, joinEvent("evt-1", "user-1")); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	// The leave's caller observed no pending claim before a concurrent claim
	// attempt landed; the delete itself must still see and honor the claim.
	if _, pending, _ := store.GetPendingClaim(context.Background(), "drop-1", "user-1"); pending {
		t.Fatal("expected no pending claim before the attempt")
	}
	claim, _ := entities.NewClaim("claim-1", "drop-1", "user-1", 1, 40.7128, -74.006, 10, "code-1", now)
	attempt := ports.ClaimEvent{EventID: "evt-claim-1", EventType: "drop.claim_attempted", ClaimID: "claim-1", DropID: "drop-1", UserID: "user-1", Quantity: 1, Status: string(entities.ClaimStatusPending), OccurredAt: now}
	if err := store.CreatePendingClaim(context.Background(), claim, attempt); err != nil {
		t.Fatalf("create pending claim failed: %v", err)
	}

	err := store.LeaveWaitlist(context.Background(), "drop-1", "user-1", joinEvent("evt-2", "user-1"))
	if !errors.Is(err, domainerrors.ErrPendingClaimExists) {
		t.Fatalf("expected pending claim to block leave, got %v", err)
	}
	if _, ok, _ := store.GetWaitlistEntry(context.Background(), "drop-1", "user-1"); !ok {
		t.Fatal("expected waitlist entry to survive the rejected leave")
	}
}

func TestUpdateDropPreservesConcurrentReservation(t *testing.T) {
	store := NewStore([]entities.Drop{seedDrop(5)}, nil)

	if err := store.Reserve(context.Background(), "drop-1", 1); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	// Catalog edit carrying the remaining quantity it read before the
	// reservation; same total, so stock must stay untouched.
	stale := seedDrop(5)
	stale.Title = "Renamed Drop"
	if err := store.UpdateDrop(context.Background(), stale); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	drop, err := store.GetDrop(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if drop.Title != "Renamed Drop" {
		t.Fatalf("expected title applied, got %q", drop.Title)
	}
	if drop.RemainingQuantity != 4 {
		t.Fatalf("expected remaining 4 after title-only update, got %d", drop.RemainingQuantity)
	}

	// Raising the total shifts remaining by the delta against current state,
	// not against the editor's stale read.
	raised := stale
	raised.TotalQuantity = 8
	raised.RemainingQuantity = 8
	if err := store.UpdateDrop(context.Background(), raised); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	drop, err = store.GetDrop(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if drop.TotalQuantity != 8 || drop.RemainingQuantity != 7 {
		t.Fatalf("expected total 8 remaining 7, got total %d remaining %d", drop.TotalQuantity, drop.RemainingQuantity)
	}
}
