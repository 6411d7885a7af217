package bookavailability

import (
	"github.com/google/uuid"
)

const (
	queryType = "BookAvailability"
)

// Query represents the input for reading the availability of a book.
type Query struct {
	BookID uuid.UUID
}

// BuildQuery creates a new Query.
func BuildQuery(bookID uuid.UUID) Query {
	return Query{BookID: bookID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
