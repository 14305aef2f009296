package commands

// Audit event types appended to the engine outbox alongside state changes.
const (
	EventTypeWaitlistJoined = "drop.waitlist_joined"
	EventTypeWaitlistLeft   = "drop.waitlist_left"
	EventTypeClaimAttempted = "drop.claim_attempted"
	EventTypeClaimDecided   = "drop.claim_decided"
)
