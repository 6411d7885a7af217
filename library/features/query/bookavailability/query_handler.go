package bookavailability

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// QueryHandler reads the book and projects its availability.
type QueryHandler struct {
	store loanstore.Reader
}

// NewQueryHandler creates a new QueryHandler with the provided store.
func NewQueryHandler(store loanstore.Reader) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the availability of the book. Returns core.ErrBookNotFound for unknown books.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Availability, error) {
	ctx = loanstore.WithEventualConsistency(ctx)

	record, err := h.store.ReadBook(ctx, query.BookID)
	if err != nil {
		return Availability{}, shell.NotFoundAs(err, core.ErrBookNotFound)
	}

	book, err := shell.BookFromRecord(record)
	if err != nil {
		return Availability{}, err
	}

	return Project(book), nil
}
