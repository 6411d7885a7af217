package loanhistory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	bookIDKey   = "BookID"
	patronIDKey = "PatronID"
)

// BuildJournalFilter creates the filter for the events naming the query's book or patron.
func BuildJournalFilter(query Query) (loanstore.JournalFilter, error) {
	predicates := make([]loanstore.Predicate, 0, 2)

	if query.BookID != uuid.Nil {
		predicates = append(predicates, loanstore.P(bookIDKey, query.BookID.String()))
	}

	if query.PatronID != uuid.Nil {
		predicates = append(predicates, loanstore.P(patronIDKey, query.PatronID.String()))
	}

	if len(predicates) == 0 {
		return loanstore.JournalFilter{}, fmt.Errorf("%w: a book or a patron is required", core.ErrInvalidQuery)
	}

	return loanstore.BuildJournalFilter().
		WithAnyPredicateOf(predicates...).
		OccurredFrom(query.From).
		OccurredUntil(query.Until), nil
}

// Project turns the journal envelopes into history entries in append order.
func Project(envelopes shell.EventEnvelopes) History {
	entries := make([]Entry, 0, len(envelopes))

	for _, envelope := range envelopes {
		entries = append(entries, Entry{
			SequenceNumber: envelope.SequenceNumber,
			EventType:      envelope.DomainEvent.IsEventType(),
			OccurredAt:     envelope.DomainEvent.HasOccurredAt(),
			Event:          envelope.DomainEvent,
			CausationID:    envelope.EventMetadata.CausationID,
		})
	}

	return History{
		Entries: entries,
		Count:   len(entries),
	}
}
