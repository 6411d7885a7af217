package loanhistory

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "LoanHistory"
)

// Query represents the input for reading the journal of a book, a patron, or both.
// From and Until bound the occurred-at time inclusively; zero means unbounded.
type Query struct {
	BookID   uuid.UUID
	PatronID uuid.UUID
	From     time.Time
	Until    time.Time
}

// ForBook creates a Query for the history of a book.
func ForBook(bookID uuid.UUID) Query {
	return Query{BookID: bookID}
}

// ForPatron creates a Query for the history of a patron.
func ForPatron(patronID uuid.UUID) Query {
	return Query{PatronID: patronID}
}

// Between returns a copy of the query bounded to the given time range.
func (q Query) Between(from, until time.Time) Query {
	q.From = from
	q.Until = until

	return q
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
