package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// ErrEventEnvelopeFromStorableEventFailed is returned when event envelope conversion fails.
var ErrEventEnvelopeFromStorableEventFailed = errors.New("event envelope from storable event failed")

// EventEnvelopes is a slice of EventEnvelope instances.
type EventEnvelopes = []EventEnvelope

// EventEnvelope combines a journaled domain event with its metadata and journal position.
type EventEnvelope struct {
	DomainEvent    core.DomainEvent
	EventMetadata  EventMetadata
	SequenceNumber uint64
}

// EventEnvelopeFrom converts a StorableEvent to an EventEnvelope.
func EventEnvelopeFrom(storableEvent loanstore.StorableEvent) (EventEnvelope, error) {
	metadata, err := EventMetadataFrom(storableEvent)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrEventEnvelopeFromStorableEventFailed, err)
	}

	domainEvent, err := DomainEventFrom(storableEvent)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrEventEnvelopeFromStorableEventFailed, err)
	}

	return EventEnvelope{
		DomainEvent:    domainEvent,
		EventMetadata:  metadata,
		SequenceNumber: storableEvent.SequenceNumber,
	}, nil
}

// EventEnvelopesFrom converts multiple StorableEvents to EventEnvelopes.
func EventEnvelopesFrom(storableEvents loanstore.StorableEvents) (EventEnvelopes, error) {
	envelopes := make(EventEnvelopes, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		envelope, err := EventEnvelopeFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		envelopes = append(envelopes, envelope)
	}

	return envelopes, nil
}
