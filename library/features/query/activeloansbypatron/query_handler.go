package activeloansbypatron

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// QueryHandler orchestrates the query workflow: Read -> Reconstitute -> Project.
type QueryHandler struct {
	store  loanstore.Reader
	policy core.LoanPolicy
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithLoanPolicy replaces the default loan policy used to compute accrued fees.
func WithLoanPolicy(policy core.LoanPolicy) Option {
	return func(h *QueryHandler) {
		h.policy = policy
	}
}

// NewQueryHandler creates a new QueryHandler with the provided store.
func NewQueryHandler(store loanstore.Reader, opts ...Option) QueryHandler {
	handler := QueryHandler{
		store:  store,
		policy: core.DefaultLoanPolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle returns the active loans of the patron. Returns core.ErrPatronNotFound for unknown patrons.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ActiveLoans, error) {
	// listings tolerate slightly stale data
	ctx = loanstore.WithEventualConsistency(ctx)

	patronRecord, err := h.store.ReadPatron(ctx, query.PatronID)
	if err != nil {
		return ActiveLoans{}, shell.NotFoundAs(err, core.ErrPatronNotFound)
	}

	patron, err := shell.PatronFromRecord(patronRecord)
	if err != nil {
		return ActiveLoans{}, err
	}

	records, err := h.store.QueryLoans(ctx, loanstore.LoanFilter{
		PatronID: query.PatronID,
		Statuses: loanstore.ActiveLoanStatuses(),
	})
	if err != nil {
		return ActiveLoans{}, err
	}

	loans, err := shell.LoansFromRecords(records)
	if err != nil {
		return ActiveLoans{}, err
	}

	return Project(patron, loans, query, h.policy), nil
}
