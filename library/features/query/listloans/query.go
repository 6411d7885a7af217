package listloans

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "ListLoans"

	// DefaultLimit caps the listing when the query does not set a limit.
	DefaultLimit = 100
)

// Query represents the input for listing loans.
// A zero PatronID lists all patrons, an empty Status lists every status.
type Query struct {
	PatronID uuid.UUID
	Status   string
	Limit    int
	At       time.Time
}

// BuildQuery creates a new Query. A limit below 1 falls back to DefaultLimit.
func BuildQuery(patronID uuid.UUID, status string, limit int, at time.Time) Query {
	if limit < 1 {
		limit = DefaultLimit
	}

	return Query{
		PatronID: patronID,
		Status:   status,
		Limit:    limit,
		At:       at,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
