package quote

import (
	"strings"
	"time"
)

// Accept moves a pending quote to accepted. Monetary fields and notes are kept.
// Callers that act on behalf of a user should check IsActionable first.
func (q *Quote) Accept(now time.Time) (*Quote, error) {
	if q.status != StatusPending {
		return nil, ErrAlreadyDecided
	}
	next := q.clone()
	next.status = StatusAccepted
	next.updatedAt = now
	return next, nil
}

// Reject moves a pending quote to rejected. The reason replaces the notes;
// a nil or blank reason clears them.
func (q *Quote) Reject(reason *string, now time.Time) (*Quote, error) {
	if q.status != StatusPending {
		return nil, ErrAlreadyDecided
	}
	next := q.clone()
	next.status = StatusRejected
	next.notes = nil
	if reason != nil && strings.TrimSpace(*reason) != "" {
		next.notes = copyString(reason)
	}
	next.updatedAt = now
	return next, nil
}

// Expire persists the date-derived expired state. Only pending quotes past
// their validity date qualify.
func (q *Quote) Expire(now time.Time) (*Quote, error) {
	if q.status != StatusPending {
		return nil, ErrAlreadyDecided
	}
	if !q.IsExpired(now) {
		return nil, ErrNotYetExpired
	}
	next := q.clone()
	next.status = StatusExpired
	next.updatedAt = now
	return next, nil
}
