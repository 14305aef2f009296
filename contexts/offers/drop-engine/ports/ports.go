package ports

import (
	"context"
	"time"

	"dropspot/contexts/offers/drop-engine/domain/entities"
	sharedevents "dropspot/internal/shared/events"
)

// DropListFilter defines read-side filtering for the drop catalog. Phase
// filtering is resolved by the query layer against the injected clock, not
// by the repository.
type DropListFilter struct {
	IncludeInactive bool
	CreatedBy       string
}

// DropRepository owns drop catalog persistence.
type DropRepository interface {
	CreateDrop(ctx context.Context, drop entities.Drop) error
	GetDrop(ctx context.Context, dropID string) (entities.Drop, error)
	// UpdateDrop persists a full drop row previously loaded via GetDrop.
	UpdateDrop(ctx context.Context, drop entities.Drop) error
	ListDrops(ctx context.Context, filter DropListFilter) ([]entities.Drop, error)
	// CompleteDropsPastEnd deactivates active drops whose window closed
	// before now, up to limit rows, and returns their ids.
	CompleteDropsPastEnd(ctx context.Context, now time.Time, limit int) ([]string, error)
}

// StockRepository is the authoritative remaining-quantity ledger.
// Reserve and Restore must be serialized per drop relative to each other.
type StockRepository interface {
	// Reserve atomically checks remaining >= quantity and decrements,
	// failing with ErrInsufficientStock otherwise.
	Reserve(ctx context.Context, dropID string, quantity int) error
	// Restore atomically increments remaining, capped at total_quantity.
	Restore(ctx context.Context, dropID string, quantity int) error
}

// WaitlistEvent is the outbound audit payload persisted with waitlist writes.
type WaitlistEvent struct {
	EventID    string
	EventType  string
	DropID     string
	UserID     string
	OccurredAt time.Time
}

// WaitlistRepository owns ordered waitlist membership per drop.
// Join assigns the monotonic sequence number; entries come back ordered by
// (joined_at, sequence) ascending.
type WaitlistRepository interface {
	// JoinWaitlist atomically enforces (drop_id, user_id) uniqueness,
	// assigns the sequence number, and appends the audit event. Fails with
	// ErrAlreadyJoined on a duplicate pair.
	JoinWaitlist(ctx context.Context, entry entities.WaitlistEntry, event WaitlistEvent) (entities.WaitlistEntry, error)
	// LeaveWaitlist removes the pair's entry, failing with ErrNotInWaitlist
	// when absent and ErrPendingClaimExists when a pending claim holds the
	// entry. The pending-claim check must be atomic with the delete so a
	// racing claim attempt cannot leave a pending claim without its entry.
	LeaveWaitlist(ctx context.Context, dropID string, userID string, event WaitlistEvent) error
	GetWaitlistEntry(ctx context.Context, dropID string, userID string) (entities.WaitlistEntry, bool, error)
	ListWaitlist(ctx context.Context, dropID string) ([]entities.WaitlistEntry, error)
	ListUserWaitlist(ctx context.Context, userID string) ([]entities.WaitlistEntry, error)
	CountWaitlist(ctx context.Context, dropID string) (int, error)
}

// ClaimEvent is the outbound audit payload persisted with claim writes.
type ClaimEvent struct {
	EventID    string
	EventType  string
	ClaimID    string
	DropID     string
	UserID     string
	Quantity   int
	Status     string
	Reason     string
	OccurredAt time.Time
}

// ClaimListFilter is the admin review listing filter.
type ClaimListFilter struct {
	DropID string
	Status entities.ClaimStatus
	Offset int
	Limit  int
}

// ClaimRepository owns claim persistence and the transaction boundaries of
// claim writes.
type ClaimRepository interface {
	// CreatePendingClaim must atomically re-verify that no pending claim
	// exists for (drop_id, user_id) and insert the claim together with its
	// audit event. Fails with ErrDuplicateClaim when a pending claim raced
	// in first.
	CreatePendingClaim(ctx context.Context, claim entities.Claim, event ClaimEvent) error
	GetClaim(ctx context.Context, claimID string) (entities.Claim, error)
	GetPendingClaim(ctx context.Context, dropID string, userID string) (entities.Claim, bool, error)
	ListClaimsByUser(ctx context.Context, userID string) ([]entities.Claim, error)
	ListClaims(ctx context.Context, filter ClaimListFilter) ([]entities.Claim, error)
	// FinalizeClaim must atomically re-check the claim is pending, persist
	// the terminal status, remove the (drop_id, user_id) waitlist entry,
	// and append the audit event. Fails with ErrClaimNotPending when a
	// concurrent decision won.
	FinalizeClaim(ctx context.Context, claim entities.Claim, event ClaimEvent) error
}

// EngineCounts are whole-engine totals for the admin stats view.
type EngineCounts struct {
	TotalDrops      int
	PendingClaims   int
	ApprovedClaims  int
	RejectedClaims  int
	WaitlistEntries int
	UnitsApproved   int
}

// StatsRepository aggregates counters across drops/claims/waitlists.
type StatsRepository interface {
	Counts(ctx context.Context) (EngineCounts, error)
}

// OutboxMessage is a row ready to relay from the engine outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// Clock allows deterministic testing of phase derivation and timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts drop/entry/claim/event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CodeGenerator issues opaque verification codes for claims.
type CodeGenerator interface {
	NewCode(ctx context.Context) (string, error)
}

// EventEnvelope reuses the canonical envelope contract.
type EventEnvelope = sharedevents.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
