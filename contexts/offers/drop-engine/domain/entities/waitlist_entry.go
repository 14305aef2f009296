package entities

import (
	"strings"
	"time"

	domainerrors "dropspot/contexts/offers/drop-engine/domain/errors"
)

// WaitlistEntry is one (drop, user) membership. Ordering across a drop's
// waitlist is joined_at ascending with the store-assigned sequence number
// breaking ties, so position stays a strict total order even when several
// joins land on the same timestamp.
type WaitlistEntry struct {
	EntryID  string
	DropID   string
	UserID   string
	JoinedAt time.Time
	Sequence uint64
}

func NewWaitlistEntry(entryID string, dropID string, userID string, joinedAt time.Time) (WaitlistEntry, error) {
	if strings.TrimSpace(entryID) == "" ||
		strings.TrimSpace(dropID) == "" ||
		strings.TrimSpace(userID) == "" {
		return WaitlistEntry{}, domainerrors.ErrInvalidWaitlistEntry
	}
	return WaitlistEntry{
		EntryID:  entryID,
		DropID:   dropID,
		UserID:   userID,
		JoinedAt: joinedAt.UTC(),
	}, nil
}

// Before reports whether e is ranked ahead of other in the same waitlist.
func (e WaitlistEntry) Before(other WaitlistEntry) bool {
	if e.JoinedAt.Equal(other.JoinedAt) {
		return e.Sequence < other.Sequence
	}
	return e.JoinedAt.Before(other.JoinedAt)
}
