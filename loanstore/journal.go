package loanstore

import (
	"encoding/json"
	"time"
)

// StorableEvents is an alias type for a slice of StorableEvent.
type StorableEvents = []StorableEvent

// StorableEvent is the journal entry appended in the same transaction as the state change it describes.
//
// It is built on scalars to stay agnostic of the domain event implementation.
// It should only be constructed with BuildStorableEvent.
type StorableEvent struct {
	EventType      string
	OccurredAt     time.Time
	PayloadJSON    []byte
	MetadataJSON   []byte
	SequenceNumber uint64
}

// BuildStorableEvent is a factory method for StorableEvent.
// Returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildStorableEvent(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (StorableEvent, error) {
	if !json.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !json.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// Predicate is a top-level key/value pair the journal payload must contain.
type Predicate struct {
	key string
	val string
}

// P constructs a Predicate.
func P(key string, val string) Predicate {
	return Predicate{key: key, val: val}
}

// Key returns the payload key.
func (p Predicate) Key() string { return p.key }

// Val returns the expected value.
func (p Predicate) Val() string { return p.val }

// JournalFilter selects journal entries: any of the event types, and any of the predicates,
// optionally bounded by occurred-at. Empty lists mean "no restriction".
type JournalFilter struct {
	eventTypes    []string
	predicates    []Predicate
	occurredFrom  time.Time
	occurredUntil time.Time
}

// BuildJournalFilter creates a JournalFilter matching any of the given event types.
func BuildJournalFilter(eventTypes ...string) JournalFilter {
	return JournalFilter{eventTypes: eventTypes}
}

// WithAnyPredicateOf returns a copy of the filter that additionally requires one of the predicates to match.
func (f JournalFilter) WithAnyPredicateOf(predicates ...Predicate) JournalFilter {
	f.predicates = append(append([]Predicate(nil), f.predicates...), predicates...)
	return f
}

// OccurredFrom returns a copy of the filter with an inclusive lower time bound.
func (f JournalFilter) OccurredFrom(t time.Time) JournalFilter {
	f.occurredFrom = t
	return f
}

// OccurredUntil returns a copy of the filter with an inclusive upper time bound.
func (f JournalFilter) OccurredUntil(t time.Time) JournalFilter {
	f.occurredUntil = t
	return f
}

// EventTypes returns the event types of the filter.
func (f JournalFilter) EventTypes() []string { return f.eventTypes }

// Predicates returns the payload predicates of the filter.
func (f JournalFilter) Predicates() []Predicate { return f.predicates }

// From returns the lower time bound, zero when unbounded.
func (f JournalFilter) From() time.Time { return f.occurredFrom }

// Until returns the upper time bound, zero when unbounded.
func (f JournalFilter) Until() time.Time { return f.occurredUntil }
