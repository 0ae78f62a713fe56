package domain

import "time"

// Event is an append-only audit record of a status change on an item.
// Events are never mutated or deleted.
type Event struct {
	EID        int64
	ItemID     int64
	Status     ItemStatus
	Username   string
	OccurredAt time.Time
}

// Comment is a free-text note on an item, optionally attached to the event
// it accompanied. EventID is zero for standalone comments. Append-only.
type Comment struct {
	CID      int64
	ItemID   int64
	EventID  int64
	Username string
	Body     string
	AddedAt  time.Time
}
