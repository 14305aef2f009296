package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	application "dropspot/contexts/offers/drop-engine/application"
	"dropspot/contexts/offers/drop-engine/domain/entities"
	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
	"dropspot/contexts/offers/drop-engine/ports"
)

const sourceService = "drop-engine"

// Store is an in-memory adapter implementing the drop-engine ports for local
// runtime and tests. A single mutex critical section per method approximates
// transactional semantics: the multi-step invariants (join uniqueness,
// duplicate-claim check + insert, stock reserve, decision finalize) each run
// atomically relative to every other call.
type Store struct {
	mu          sync.RWMutex
	drops       map[string]entities.Drop
	waitlist    map[string]entities.WaitlistEntry
	claims      map[string]entities.Claim
	pendingIdx  map[string]string
	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	outboxSent  map[string]time.Time
	joinSeq     uint64
	sequence    uint64
	logger      *slog.Logger
}

// NewStore seeds drop catalog state and initializes waitlist/claim stores.
func NewStore(seedDrops []entities.Drop, logger *slog.Logger) *Store {
	dropMap := make(map[string]entities.Drop, len(seedDrops))
	for _, drop := range seedDrops {
		dropMap[drop.DropID] = drop
	}
	return &Store{
		drops:       dropMap,
		waitlist:    make(map[string]entities.WaitlistEntry),
		claims:      make(map[string]entities.Claim),
		pendingIdx:  make(map[string]string),
		outbox:      make(map[string]ports.OutboxMessage),
		outboxOrder: make([]string, 0),
		outboxSent:  make(map[string]time.Time),
		logger:      application.ResolveLogger(logger),
	}
}

func pairKey(dropID string, userID string) string {
	return dropID + "\x00" + userID
}

func (s *Store) CreateDrop(_ context.Context, drop entities.Drop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drops[drop.DropID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.drops[drop.DropID] = drop
	return nil
}

func (s *Store) GetDrop(_ context.Context, dropID string) (entities.Drop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	drop, ok := s.drops[dropID]
	if !ok {
		return entities.Drop{}, domainerrors.ErrDropNotFound
	}
	return drop, nil
}

func (s *Store) UpdateDrop(_ context.Context, drop entities.Drop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.drops[drop.DropID]
	if !ok {
		return domainerrors.ErrDropNotFound
	}
	// Stock is owned by Reserve/Restore; a catalog save never applies the
	// remaining quantity it read. When the total moved, remaining shifts by
	// the same delta against current state, clamped to [0, total].
	remaining := current.RemainingQuantity + (drop.TotalQuantity - current.TotalQuantity)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > drop.TotalQuantity {
		remaining = drop.TotalQuantity
	}
	drop.RemainingQuantity = remaining
	s.drops[drop.DropID] = drop
	return nil
}

func (s *Store) ListDrops(_ context.Context, filter ports.DropListFilter) ([]entities.Drop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Drop, 0, len(s.drops))
	for _, drop := range s.drops {
		if !filter.IncludeInactive && !drop.IsActive {
			continue
		}
		if filter.CreatedBy != "" && drop.CreatedBy != filter.CreatedBy {
			continue
		}
		items = append(items, drop)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DropID < items[j].DropID
	})
	return items, nil
}

func (s *Store) CompleteDropsPastEnd(_ context.Context, now time.Time, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]string, 0)
	for id, drop := range s.drops {
		if drop.IsActive && drop.EndTime.Before(now.UTC()) {
			candidates = append(candidates, id)
		}
	}
	sort.Strings(candidates)
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	for _, id := range candidates {
		drop := s.drops[id]
		drop.IsActive = false
		drop.UpdatedAt = now.UTC()
		s.drops[id] = drop
	}
	return candidates, nil
}

func (s *Store) Reserve(_ context.Context, dropID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop, ok := s.drops[dropID]
	if !ok {
		return domainerrors.ErrDropNotFound
	}
	if drop.RemainingQuantity < quantity {
		return domainerrors.ErrInsufficientStock
	}
	drop.RemainingQuantity -= quantity
	s.drops[dropID] = drop
	return nil
}

func (s *Store) Restore(_ context.Context, dropID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop, ok := s.drops[dropID]
	if !ok {
		return domainerrors.ErrDropNotFound
	}
	drop.RemainingQuantity += quantity
	if drop.RemainingQuantity > drop.TotalQuantity {
		drop.RemainingQuantity = drop.TotalQuantity
	}
	s.drops[dropID] = drop
	return nil
}

func (s *Store) JoinWaitlist(_ context.Context, entry entities.WaitlistEntry, event ports.WaitlistEvent) (entities.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(entry.DropID, entry.UserID)
	if _, ok := s.waitlist[key]; ok {
		return entities.WaitlistEntry{}, domainerrors.ErrAlreadyJoined
	}
	s.joinSeq++
	entry.Sequence = s.joinSeq
	s.waitlist[key] = entry

	if err := s.appendWaitlistOutbox(event); err != nil {
		delete(s.waitlist, key)
		return entities.WaitlistEntry{}, err
	}
	return entry, nil
}

func (s *Store) LeaveWaitlist(_ context.Context, dropID string, userID string, event ports.WaitlistEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(dropID, userID)
	if _, ok := s.waitlist[key]; !ok {
		return domainerrors.ErrNotInWaitlist
	}
	// Checked under the same lock as CreatePendingClaim, so a claim attempt
	// racing this leave cannot land between the check and the delete.
	if _, ok := s.pendingIdx[key]; ok {
		return domainerrors.ErrPendingClaimExists
	}
	delete(s.waitlist, key)
	return s.appendWaitlistOutbox(event)
}

func (s *Store) GetWaitlistEntry(_ context.Context, dropID string, userID string) (entities.WaitlistEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.waitlist[pairKey(dropID, userID)]
	return entry, ok, nil
}

func (s *Store) ListWaitlist(_ context.Context, dropID string) ([]entities.WaitlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]entities.WaitlistEntry, 0)
	for _, entry := range s.waitlist {
		if entry.DropID == dropID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})
	return entries, nil
}

func (s *Store) ListUserWaitlist(_ context.Context, userID string) ([]entities.WaitlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]entities.WaitlistEntry, 0)
	for _, entry := range s.waitlist {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})
	return entries, nil
}

func (s *Store) CountWaitlist(_ context.Context, dropID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, entry := range s.waitlist {
		if entry.DropID == dropID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreatePendingClaim(_ context.Context, claim entities.Claim, event ports.ClaimEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[claim.ClaimID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	key := pairKey(claim.DropID, claim.UserID)
	if _, ok := s.pendingIdx[key]; ok {
		return domainerrors.ErrDuplicateClaim
	}

	s.claims[claim.ClaimID] = claim
	s.pendingIdx[key] = claim.ClaimID
	if err := s.appendClaimOutbox(event); err != nil {
		delete(s.claims, claim.ClaimID)
		delete(s.pendingIdx, key)
		return err
	}
	return nil
}

func (s *Store) GetClaim(_ context.Context, claimID string) (entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[claimID]
	if !ok {
		return entities.Claim{}, domainerrors.ErrClaimNotFound
	}
	return claim, nil
}

func (s *Store) GetPendingClaim(_ context.Context, dropID string, userID string) (entities.Claim, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claimID, ok := s.pendingIdx[pairKey(dropID, userID)]
	if !ok {
		return entities.Claim{}, false, nil
	}
	return s.claims[claimID], true, nil
}

func (s *Store) ListClaimsByUser(_ context.Context, userID string) ([]entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Claim, 0)
	for _, claim := range s.claims {
		if claim.UserID == userID {
			items = append(items, claim)
		}
	}
	sortClaims(items)
	return items, nil
}

func (s *Store) ListClaims(_ context.Context, filter ports.ClaimListFilter) ([]entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Claim, 0)
	for _, claim := range s.claims {
		if filter.DropID != "" && claim.DropID != filter.DropID {
			continue
		}
		if filter.Status != "" && claim.Status != filter.Status {
			continue
		}
		items = append(items, claim)
	}
	sortClaims(items)

	start := filter.Offset
	if start > len(items) {
		start = len(items)
	}
	end := len(items)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return append([]entities.Claim(nil), items[start:end]...), nil
}

func (s *Store) FinalizeClaim(_ context.Context, claim entities.Claim, event ports.ClaimEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.claims[claim.ClaimID]
	if !ok {
		return domainerrors.ErrClaimNotFound
	}
	if current.Decided() {
		return domainerrors.ErrClaimNotPending
	}

	key := pairKey(claim.DropID, claim.UserID)
	s.claims[claim.ClaimID] = claim
	delete(s.pendingIdx, key)
	// Membership does not survive a terminal decision.
	delete(s.waitlist, key)
	return s.appendClaimOutbox(event)
}

func (s *Store) Counts(_ context.Context) (ports.EngineCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := ports.EngineCounts{
		TotalDrops:      len(s.drops),
		WaitlistEntries: len(s.waitlist),
	}
	for _, claim := range s.claims {
		switch claim.Status {
		case entities.ClaimStatusPending:
			counts.PendingClaims++
		case entities.ClaimStatusApproved:
			counts.ApprovedClaims++
			counts.UnitsApproved += claim.Quantity
		case entities.ClaimStatusRejected:
			counts.RejectedClaims++
		}
	}
	return counts, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]ports.OutboxMessage, 0)
	for _, id := range s.outboxOrder {
		if _, sent := s.outboxSent[id]; sent {
			continue
		}
		if message, ok := s.outbox[id]; ok {
			pending = append(pending, message)
		}
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outbox[outboxID]; !ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

// OutboxEvents exposes appended rows for tests/inspection.
func (s *Store) OutboxEvents() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]ports.OutboxMessage, 0, len(s.outboxOrder))
	for _, id := range s.outboxOrder {
		if message, ok := s.outbox[id]; ok {
			events = append(events, message)
		}
	}
	return events
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("mem-%d", value), nil
}

func (s *Store) NewCode(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return "vc-" + strconv.FormatUint(value, 10), nil
}

func (s *Store) appendWaitlistOutbox(event ports.WaitlistEvent) error {
	data, err := json.Marshal(map[string]string{
		"drop_id": event.DropID,
		"user_id": event.UserID,
	})
	if err != nil {
		return err
	}
	return s.appendOutbox(event.EventID, event.EventType, event.DropID, event.OccurredAt, data)
}

func (s *Store) appendClaimOutbox(event ports.ClaimEvent) error {
	data, err := json.Marshal(map[string]any{
		"claim_id": event.ClaimID,
		"drop_id":  event.DropID,
		"user_id":  event.UserID,
		"quantity": event.Quantity,
		"status":   event.Status,
		"reason":   event.Reason,
	})
	if err != nil {
		return err
	}
	return s.appendOutbox(event.EventID, event.EventType, event.DropID, event.OccurredAt, data)
}

// appendOutbox runs inside the caller's critical section.
func (s *Store) appendOutbox(eventID string, eventType string, partitionKey string, occurredAt time.Time, data []byte) error {
	envelope := ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    sourceService,
		SchemaVersion:    1,
		PartitionKeyPath: "drop_id",
		PartitionKey:     partitionKey,
		Data:             data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.outbox[eventID] = ports.OutboxMessage{
		OutboxID:     eventID,
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      payload,
		CreatedAt:    occurredAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, eventID)

	s.logger.Debug("outbox event appended",
		"event", "memory_outbox_appended",
		"module", "offers/drop-engine",
		"layer", "adapter",
		"event_type", eventType,
		"event_id", eventID,
	)
	return nil
}

func sortClaims(items []entities.Claim) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ClaimID < items[j].ClaimID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
