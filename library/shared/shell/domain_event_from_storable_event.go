package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents loanstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent loanstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshalPayload[core.BookAddedToCatalog](payload)

	case core.BookCopiesResizedEventType:
		return unmarshalPayload[core.BookCopiesResized](payload)

	case core.BookRemovedFromCatalogEventType:
		return unmarshalPayload[core.BookRemovedFromCatalog](payload)

	case core.PatronRegisteredEventType:
		return unmarshalPayload[core.PatronRegistered](payload)

	case core.PatronCategoryChangedEventType:
		return unmarshalPayload[core.PatronCategoryChanged](payload)

	case core.PatronRemovedEventType:
		return unmarshalPayload[core.PatronRemoved](payload)

	case core.BookBorrowedEventType:
		return unmarshalPayload[core.BookBorrowed](payload)

	case core.LoanReturnedEventType:
		return unmarshalPayload[core.LoanWasReturned](payload)

	case core.LoanExtendedEventType:
		return unmarshalPayload[core.LoanExtended](payload)

	case core.LoanMarkedOverdueEventType:
		return unmarshalPayload[core.LoanMarkedOverdue](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
