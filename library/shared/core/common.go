package core

import (
	"time"
)

// Instead of implementing full value objects, some alias types are used for the journal events.

// BookIDString represents a book identifier
type BookIDString = string

// PatronIDString represents a patron identifier
type PatronIDString = string

// LoanIDString represents a loan identifier
type LoanIDString = string

// OccurredAtTS represents when something happened
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision,
// which is what PostgreSQL stores.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
