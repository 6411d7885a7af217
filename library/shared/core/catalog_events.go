package core

import (
	"time"
)

const (
	// BookAddedToCatalogEventType is the event type identifier.
	BookAddedToCatalogEventType = "BookAddedToCatalog"

	// BookCopiesResizedEventType is the event type identifier.
	BookCopiesResizedEventType = "BookCopiesResized"

	// BookRemovedFromCatalogEventType is the event type identifier.
	BookRemovedFromCatalogEventType = "BookRemovedFromCatalog"
)

// BookAddedToCatalog represents when a book with all its copies was added to the catalog.
type BookAddedToCatalog struct {
	BookID          BookIDString
	ISBN            string
	Title           string
	Author          string
	Publisher       string
	PublicationYear int
	TotalCopies     int
	OccurredAt      OccurredAtTS
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog event.
func BuildBookAddedToCatalog(book Book, occurredAt time.Time) BookAddedToCatalog {
	return BookAddedToCatalog{
		BookID:          book.BookID.String(),
		ISBN:            book.ISBN,
		Title:           book.Title,
		Author:          book.Author,
		Publisher:       book.Publisher,
		PublicationYear: book.PublicationYear,
		TotalCopies:     book.TotalCopies(),
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookAddedToCatalog) IsEventType() string {
	return BookAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// BookCopiesResized represents when the number of owned copies of a book changed.
type BookCopiesResized struct {
	BookID             BookIDString
	PreviousTotal      int
	NewTotal           int
	AvailableAfterward int
	OccurredAt         OccurredAtTS
}

// BuildBookCopiesResized creates a new BookCopiesResized event.
func BuildBookCopiesResized(previousTotal int, resized Book, occurredAt time.Time) BookCopiesResized {
	return BookCopiesResized{
		BookID:             resized.BookID.String(),
		PreviousTotal:      previousTotal,
		NewTotal:           resized.TotalCopies(),
		AvailableAfterward: resized.AvailableCopies(),
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookCopiesResized) IsEventType() string {
	return BookCopiesResizedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopiesResized) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// BookRemovedFromCatalog represents when a book was removed from the catalog.
type BookRemovedFromCatalog struct {
	BookID     BookIDString
	ISBN       string
	OccurredAt OccurredAtTS
}

// BuildBookRemovedFromCatalog creates a new BookRemovedFromCatalog event.
func BuildBookRemovedFromCatalog(book Book, occurredAt time.Time) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		BookID:     book.BookID.String(),
		ISBN:       book.ISBN,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookRemovedFromCatalog) IsEventType() string {
	return BookRemovedFromCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
