package core

import (
	"time"
)

const (
	// PatronRegisteredEventType is the event type identifier.
	PatronRegisteredEventType = "PatronRegistered"

	// PatronCategoryChangedEventType is the event type identifier.
	PatronCategoryChangedEventType = "PatronCategoryChanged"

	// PatronRemovedEventType is the event type identifier.
	PatronRemovedEventType = "PatronRemoved"
)

// PatronRegistered represents when a patron became a library member.
type PatronRegistered struct {
	PatronID    PatronIDString
	Name        string
	Email       string
	Category    string
	BorrowLimit int
	OccurredAt  OccurredAtTS
}

// BuildPatronRegistered creates a new PatronRegistered event.
func BuildPatronRegistered(patron Patron, occurredAt time.Time) PatronRegistered {
	return PatronRegistered{
		PatronID:    patron.PatronID.String(),
		Name:        patron.Name,
		Email:       patron.Email,
		Category:    patron.Category.String(),
		BorrowLimit: patron.BorrowLimit,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e PatronRegistered) IsEventType() string {
	return PatronRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// PatronCategoryChanged represents when a patron moved into another category.
type PatronCategoryChanged struct {
	PatronID         PatronIDString
	PreviousCategory string
	NewCategory      string
	BorrowLimit      int
	OccurredAt       OccurredAtTS
}

// BuildPatronCategoryChanged creates a new PatronCategoryChanged event.
func BuildPatronCategoryChanged(previous Category, patron Patron, occurredAt time.Time) PatronCategoryChanged {
	return PatronCategoryChanged{
		PatronID:         patron.PatronID.String(),
		PreviousCategory: previous.String(),
		NewCategory:      patron.Category.String(),
		BorrowLimit:      patron.BorrowLimit,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e PatronCategoryChanged) IsEventType() string {
	return PatronCategoryChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronCategoryChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// PatronRemoved represents when a patron was removed.
type PatronRemoved struct {
	PatronID   PatronIDString
	OccurredAt OccurredAtTS
}

// BuildPatronRemoved creates a new PatronRemoved event.
func BuildPatronRemoved(patron Patron, occurredAt time.Time) PatronRemoved {
	return PatronRemoved{
		PatronID:   patron.PatronID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e PatronRemoved) IsEventType() string {
	return PatronRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
