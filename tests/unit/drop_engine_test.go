package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	dropengine "dropspot/contexts/offers/drop-engine"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	httptransport "dropspot/contexts/offers/drop-engine/transport/http"
)

func activeDrop(dropID string, total int) entities.Drop {
	now := time.Now().UTC()
	return entities.Drop{
		DropID:            dropID,
		Title:             "Limited Sneaker Drop",
		Address:           "123 Broadway",
		Latitude:          40.7128,
		Longitude:         -74.006,
		RadiusMeters:      200,
		TotalQuantity:     total,
		RemainingQuantity: total,
		StartTime:         now.Add(-time.Hour),
		EndTime:           now.Add(time.Hour),
		IsActive:          true,
		CreatedBy:         "admin-1",
		CreatedAt:         now.Add(-2 * time.Hour),
		UpdatedAt:         now.Add(-2 * time.Hour),
	}
}

func upcomingDrop(dropID string) entities.Drop {
	drop := activeDrop(dropID, 5)
	drop.StartTime = time.Now().UTC().Add(time.Hour)
	drop.EndTime = time.Now().UTC().Add(2 * time.Hour)
	return drop
}

func TestJoinWaitlistAssignsPositions(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	first, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a")
	if err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if first.Position != 1 {
		t.Fatalf("expected position 1, got %d", first.Position)
	}

	second, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-b")
	if err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if second.Position != 2 {
		t.Fatalf("expected position 2, got %d", second.Position)
	}

	_, err = module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a")
	if !errors.Is(err, domainerrors.ErrAlreadyJoined) {
		t.Fatalf("expected already joined, got %v", err)
	}
}

func TestJoinWaitlistRejectsNonActiveDrop(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{upcomingDrop("drop-up")}, nil)

	_, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-up", "user-a")
	if !errors.Is(err, domainerrors.ErrDropNotJoinable) {
		t.Fatalf("expected drop not joinable, got %v", err)
	}
}

func TestLeaveWaitlistRecomputesPositions(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	for _, user := range []string{"user-a", "user-b", "user-c"} {
		if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", user); err != nil {
			t.Fatalf("join %s failed: %v", user, err)
		}
	}

	if _, err := module.Handler.LeaveWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("leave failed: %v", err)
	}

	position, err := module.Handler.WaitlistPositionHandler(context.Background(), "drop-1", "user-b")
	if err != nil {
		t.Fatalf("position failed: %v", err)
	}
	if position.Position != 1 {
		t.Fatalf("expected user-b promoted to 1, got %d", position.Position)
	}
	if position.WaitlistCount != 2 {
		t.Fatalf("expected waitlist count 2, got %d", position.WaitlistCount)
	}

	_, err = module.Handler.LeaveWaitlistHandler(context.Background(), "drop-1", "user-a")
	if !errors.Is(err, domainerrors.ErrNotInWaitlist) {
		t.Fatalf("expected not in waitlist, got %v", err)
	}
}

func TestLeaveWaitlistBlockedByPendingClaim(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  1,
		Latitude:  40.7128,
		Longitude: -74.006,
	}); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	_, err := module.Handler.LeaveWaitlistHandler(context.Background(), "drop-1", "user-a")
	if !errors.Is(err, domainerrors.ErrPendingClaimExists) {
		t.Fatalf("expected pending claim exists, got %v", err)
	}
}

func TestAttemptClaimAdmissionChecks(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	inFence := httptransport.AttemptClaimRequest{Quantity: 1, Latitude: 40.7128, Longitude: -74.006}

	_, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", inFence)
	if !errors.Is(err, domainerrors.ErrNotInWaitlist) {
		t.Fatalf("expected not in waitlist, got %v", err)
	}

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	_, err = module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  1,
		Latitude:  40.8,
		Longitude: -74.006,
	})
	if !errors.Is(err, domainerrors.ErrOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}

	claim, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", inFence)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if claim.Item.Status != string(entities.ClaimStatusPending) {
		t.Fatalf("expected pending claim, got %s", claim.Item.Status)
	}
	if claim.Item.VerificationCode != "" {
		t.Fatal("verification code must stay hidden while pending")
	}

	_, err = module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", inFence)
	if !errors.Is(err, domainerrors.ErrDuplicateClaim) {
		t.Fatalf("expected duplicate claim, got %v", err)
	}
}

func TestAttemptClaimSoldOut(t *testing.T) {
	drop := activeDrop("drop-1", 1)
	drop.RemainingQuantity = 0
	module := dropengine.NewInMemoryModule([]entities.Drop{drop}, nil)

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	_, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  1,
		Latitude:  40.7128,
		Longitude: -74.006,
	})
	if !errors.Is(err, domainerrors.ErrOutOfStock) {
		t.Fatalf("expected out of stock, got %v", err)
	}
}

func TestApproveClaimReservesStockAndClearsWaitlist(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	claim, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  2,
		Latitude:  40.7128,
		Longitude: -74.006,
	})
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	decision, err := module.Handler.DecideClaimHandler(context.Background(), claim.Item.ClaimID, "admin-1", httptransport.DecideClaimRequest{Approve: true})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if decision.Item.Status != string(entities.ClaimStatusApproved) {
		t.Fatalf("expected approved, got %s", decision.Item.Status)
	}
	if decision.AutoRejected {
		t.Fatal("unexpected auto rejection")
	}
	if decision.Item.VerificationCode == "" {
		t.Fatal("expected verification code on approved claim")
	}

	drop, err := module.Handler.GetDropHandler(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("get drop failed: %v", err)
	}
	if drop.Item.RemainingQuantity != 3 {
		t.Fatalf("expected remaining 3 after approval, got %d", drop.Item.RemainingQuantity)
	}

	count, err := module.Handler.WaitlistCountHandler(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count.WaitlistCount != 0 {
		t.Fatalf("expected empty waitlist after decision, got %d", count.WaitlistCount)
	}

	_, err = module.Handler.DecideClaimHandler(context.Background(), claim.Item.ClaimID, "admin-1", httptransport.DecideClaimRequest{Approve: false})
	if !errors.Is(err, domainerrors.ErrClaimNotPending) {
		t.Fatalf("expected claim not pending on replay, got %v", err)
	}
}

func TestApproveAutoRejectsWhenStockExhausted(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 1)}, nil)

	inFence := httptransport.AttemptClaimRequest{Quantity: 1, Latitude: 40.7128, Longitude: -74.006}
	var claimIDs []string
	for _, user := range []string{"user-a", "user-b"} {
		if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", user); err != nil {
			t.Fatalf("join %s failed: %v", user, err)
		}
		claim, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", user, inFence)
		if err != nil {
			t.Fatalf("claim %s failed: %v", user, err)
		}
		claimIDs = append(claimIDs, claim.Item.ClaimID)
	}

	if _, err := module.Handler.DecideClaimHandler(context.Background(), claimIDs[0], "admin-1", httptransport.DecideClaimRequest{Approve: true}); err != nil {
		t.Fatalf("first approval failed: %v", err)
	}

	second, err := module.Handler.DecideClaimHandler(context.Background(), claimIDs[1], "admin-1", httptransport.DecideClaimRequest{Approve: true})
	if err != nil {
		t.Fatalf("second approval should auto-reject, not fail: %v", err)
	}
	if !second.AutoRejected {
		t.Fatal("expected auto rejection")
	}
	if second.Item.Status != string(entities.ClaimStatusRejected) {
		t.Fatalf("expected rejected, got %s", second.Item.Status)
	}
	if second.Item.RejectReason != entities.RejectReasonInsufficientStock {
		t.Fatalf("expected insufficient stock reason, got %q", second.Item.RejectReason)
	}
}

func TestRejectClaimKeepsStock(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	claim, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  3,
		Latitude:  40.7128,
		Longitude: -74.006,
	})
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	decision, err := module.Handler.DecideClaimHandler(context.Background(), claim.Item.ClaimID, "admin-1", httptransport.DecideClaimRequest{Approve: false})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if decision.Item.Status != string(entities.ClaimStatusRejected) {
		t.Fatalf("expected rejected, got %s", decision.Item.Status)
	}

	drop, err := module.Handler.GetDropHandler(context.Background(), "drop-1")
	if err != nil {
		t.Fatalf("get drop failed: %v", err)
	}
	if drop.Item.RemainingQuantity != 5 {
		t.Fatalf("expected stock untouched by rejection, got %d", drop.Item.RemainingQuantity)
	}
}

func TestDropStatusView(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	status, err := module.Handler.DropStatusHandler(context.Background(), "drop-1", "user-a")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.InWaitlist || status.Claim != nil {
		t.Fatal("expected empty status for unknown user")
	}

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  1,
		Latitude:  40.7128,
		Longitude: -74.006,
	}); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	status, err = module.Handler.DropStatusHandler(context.Background(), "drop-1", "user-a")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !status.InWaitlist || status.Position != 1 {
		t.Fatalf("expected waitlisted at position 1, got in=%v pos=%d", status.InWaitlist, status.Position)
	}
	if status.Claim == nil || status.Claim.Status != string(entities.ClaimStatusPending) {
		t.Fatal("expected pending claim in status view")
	}
}

func TestCreateUpdateDeactivateDrop(t *testing.T) {
	module := dropengine.NewInMemoryModule(nil, nil)
	now := time.Now().UTC()

	created, err := module.Handler.CreateDropHandler(context.Background(), "admin-1", httptransport.CreateDropRequest{
		Title:         "Pop-up Vinyl Drop",
		Latitude:      40.7128,
		Longitude:     -74.006,
		RadiusMeters:  150,
		TotalQuantity: 20,
		StartTime:     now.Add(time.Hour).Format(time.RFC3339),
		EndTime:       now.Add(3 * time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Item.Phase != string(entities.DropPhaseUpcoming) {
		t.Fatalf("expected upcoming phase, got %s", created.Item.Phase)
	}
	if created.Item.RemainingQuantity != 20 {
		t.Fatalf("expected remaining 20, got %d", created.Item.RemainingQuantity)
	}

	newTitle := "Pop-up Vinyl Drop v2"
	newTotal := 25
	updated, err := module.Handler.UpdateDropHandler(context.Background(), created.Item.DropID, httptransport.UpdateDropRequest{
		Title:         &newTitle,
		TotalQuantity: &newTotal,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Item.Title != newTitle {
		t.Fatalf("expected updated title, got %s", updated.Item.Title)
	}
	if updated.Item.RemainingQuantity != 25 {
		t.Fatalf("expected remaining to follow total delta, got %d", updated.Item.RemainingQuantity)
	}

	if err := module.Handler.DeactivateDropHandler(context.Background(), created.Item.DropID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	drop, err := module.Handler.GetDropHandler(context.Background(), created.Item.DropID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if drop.Item.IsActive {
		t.Fatal("expected deactivated drop")
	}
	if drop.Item.Phase != string(entities.DropPhasePast) {
		t.Fatalf("expected past phase after deactivation, got %s", drop.Item.Phase)
	}
	// Idempotent soft delete.
	if err := module.Handler.DeactivateDropHandler(context.Background(), created.Item.DropID); err != nil {
		t.Fatalf("repeat deactivate should be a no-op: %v", err)
	}
}

func TestListDropsPhaseFilterAndNearby(t *testing.T) {
	active := activeDrop("drop-active", 5)
	upcoming := upcomingDrop("drop-upcoming")
	uptown := activeDrop("drop-uptown", 5)
	uptown.Latitude = 40.78
	far := activeDrop("drop-far", 5)
	far.Latitude = 34.0522
	far.Longitude = -118.2437
	module := dropengine.NewInMemoryModule([]entities.Drop{active, upcoming, uptown, far}, nil)

	all, err := module.Handler.ListDropsHandler(context.Background(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all.Items) != 4 {
		t.Fatalf("expected 4 drops, got %d", len(all.Items))
	}

	upcomingOnly, err := module.Handler.ListDropsHandler(context.Background(), "upcoming")
	if err != nil {
		t.Fatalf("list upcoming failed: %v", err)
	}
	if len(upcomingOnly.Items) != 1 || upcomingOnly.Items[0].DropID != "drop-upcoming" {
		t.Fatalf("expected only the upcoming drop, got %+v", upcomingOnly.Items)
	}

	if _, err := module.Handler.ListDropsHandler(context.Background(), "bogus"); !errors.Is(err, domainerrors.ErrInvalidDrop) {
		t.Fatalf("expected invalid phase rejection, got %v", err)
	}

	nearby, err := module.Handler.NearbyDropsHandler(context.Background(), 40.7128, -74.006, 50)
	if err != nil {
		t.Fatalf("nearby failed: %v", err)
	}
	if len(nearby.Items) != 2 {
		t.Fatalf("expected 2 active drops within 50km, got %d", len(nearby.Items))
	}
	if nearby.Items[0].DropID != "drop-active" || nearby.Items[1].DropID != "drop-uptown" {
		t.Fatalf("expected drops sorted by distance, got %+v", nearby.Items)
	}
}

func TestMyWaitlistAndMyClaims(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5), activeDrop("drop-2", 5)}, nil)

	for _, dropID := range []string{"drop-1", "drop-2"} {
		if _, err := module.Handler.JoinWaitlistHandler(context.Background(), dropID, "user-a"); err != nil {
			t.Fatalf("join %s failed: %v", dropID, err)
		}
	}
	if _, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  1,
		Latitude:  40.7128,
		Longitude: -74.006,
	}); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	waitlist, err := module.Handler.MyWaitlistHandler(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("my waitlist failed: %v", err)
	}
	if len(waitlist.Items) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(waitlist.Items))
	}

	claims, err := module.Handler.MyClaimsHandler(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("my claims failed: %v", err)
	}
	if len(claims.Items) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims.Items))
	}
}

func TestGetClaimOwnership(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", "user-a"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	claim, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", "user-a", httptransport.AttemptClaimRequest{
		Quantity:  1,
		Latitude:  40.7128,
		Longitude: -74.006,
	})
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if _, err := module.Handler.GetClaimHandler(context.Background(), claim.Item.ClaimID, "user-a", false); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := module.Handler.GetClaimHandler(context.Background(), claim.Item.ClaimID, "user-b", false); !errors.Is(err, domainerrors.ErrNotClaimOwner) {
		t.Fatalf("expected not claim owner, got %v", err)
	}
	if _, err := module.Handler.GetClaimHandler(context.Background(), claim.Item.ClaimID, "user-b", true); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestAdminListClaimsAndStats(t *testing.T) {
	module := dropengine.NewInMemoryModule([]entities.Drop{activeDrop("drop-1", 5)}, nil)

	inFence := httptransport.AttemptClaimRequest{Quantity: 1, Latitude: 40.7128, Longitude: -74.006}
	var claimIDs []string
	for _, user := range []string{"user-a", "user-b", "user-c"} {
		if _, err := module.Handler.JoinWaitlistHandler(context.Background(), "drop-1", user); err != nil {
			t.Fatalf("join %s failed: %v", user, err)
		}
		claim, err := module.Handler.AttemptClaimHandler(context.Background(), "drop-1", user, inFence)
		if err != nil {
			t.Fatalf("claim %s failed: %v", user, err)
		}
		claimIDs = append(claimIDs, claim.Item.ClaimID)
	}

	if _, err := module.Handler.DecideClaimHandler(context.Background(), claimIDs[0], "admin-1", httptransport.DecideClaimRequest{Approve: true}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := module.Handler.DecideClaimHandler(context.Background(), claimIDs[1], "admin-1", httptransport.DecideClaimRequest{Approve: false}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	pendingOnly, err := module.Handler.ListClaimsHandler(context.Background(), "drop-1", "pending", 0, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pendingOnly.Items) != 1 || pendingOnly.Items[0].ClaimID != claimIDs[2] {
		t.Fatalf("expected one pending claim, got %+v", pendingOnly.Items)
	}

	stats, err := module.Handler.StatsHandler(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalDrops != 1 || stats.ActiveDrops != 1 {
		t.Fatalf("unexpected drop counts: %+v", stats)
	}
	if stats.PendingClaims != 1 || stats.ApprovedClaims != 1 || stats.RejectedClaims != 1 {
		t.Fatalf("unexpected claim counts: %+v", stats)
	}
	if stats.UnitsApproved != 1 {
		t.Fatalf("expected 1 unit approved, got %d", stats.UnitsApproved)
	}
	if stats.WaitlistEntries != 1 {
		t.Fatalf("expected 1 remaining waitlist entry, got %d", stats.WaitlistEntries)
	}
}
