package loanhistory

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// QueryHandler orchestrates the query workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	store loanstore.Reader
}

// NewQueryHandler creates a new QueryHandler with the provided store.
func NewQueryHandler(store loanstore.Reader) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the journal entries of the query's book or patron.
func (h QueryHandler) Handle(ctx context.Context, query Query) (History, error) {
	filter, err := BuildJournalFilter(query)
	if err != nil {
		return History{}, err
	}

	ctx = loanstore.WithEventualConsistency(ctx)

	storableEvents, err := h.store.QueryEvents(ctx, filter)
	if err != nil {
		return History{}, err
	}

	envelopes, err := shell.EventEnvelopesFrom(storableEvents)
	if err != nil {
		return History{}, err
	}

	return Project(envelopes), nil
}
