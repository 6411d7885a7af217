package activeloansbypatron

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "ActiveLoansByPatron"
)

// Query represents the input for listing the active loans of a patron as of At.
type Query struct {
	PatronID uuid.UUID
	At       time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(patronID uuid.UUID, at time.Time) Query {
	return Query{
		PatronID: patronID,
		At:       at,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
