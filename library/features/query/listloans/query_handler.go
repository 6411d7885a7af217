package listloans

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// QueryHandler orchestrates the listing: Read -> Reconstitute -> Project.
type QueryHandler struct {
	store loanstore.Reader
}

// NewQueryHandler creates a new QueryHandler with the provided store.
func NewQueryHandler(store loanstore.Reader) QueryHandler {
	return QueryHandler{store: store}
}

// Handle lists the loans matching the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Loans, error) {
	if query.Limit < 1 {
		query.Limit = DefaultLimit
	}

	statuses, err := storedStatusesFor(query.Status)
	if err != nil {
		return Loans{}, err
	}

	filter := loanstore.LoanFilter{
		PatronID: query.PatronID,
		Statuses: statuses,
	}

	// Only an exact stored-status match can be limited by the store.
	if query.Status == "" || query.Status == loanstore.LoanStatusReturned {
		filter.Limit = query.Limit
	}

	ctx = loanstore.WithEventualConsistency(ctx)

	records, err := h.store.QueryLoans(ctx, filter)
	if err != nil {
		return Loans{}, err
	}

	loans, err := shell.LoansFromRecords(records)
	if err != nil {
		return Loans{}, err
	}

	return Project(loans, query), nil
}
