package loanhistory

import (
	"time"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Entry is one journaled event.
type Entry struct {
	SequenceNumber uint64
	EventType      string
	OccurredAt     time.Time
	Event          core.DomainEvent
	CausationID    string
}

// History represents the query result.
type History struct {
	Entries []Entry
	Count   int
}
