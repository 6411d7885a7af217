package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/registerpatron"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// Patron categories as accepted by registerpatron.
const (
	CategoryStandard   = "standard"
	CategoryPrivileged = "privileged"
)

// GivenBookAdded adds a book with the given number of copies and returns its id.
func GivenBookAdded(ctx context.Context, t testing.TB, store loanstore.Transactor, totalCopies int, at time.Time) uuid.UUID {
	t.Helper()

	bookID := uuid.New()
	command := addbook.BuildCommand(bookID, UniqueISBN(), "The Go Programming Language", "Donovan, Kernighan", "Addison-Wesley", 2015, totalCopies, at)

	_, _, err := addbook.NewCommandHandler(store).Handle(ctx, command)
	require.NoError(t, err, "error in arranging test fixture: add book")

	return bookID
}

// GivenPatronRegistered registers a patron in the given category and returns its id.
func GivenPatronRegistered(ctx context.Context, t testing.TB, store loanstore.Transactor, category string, at time.Time) uuid.UUID {
	t.Helper()

	patronID := uuid.New()
	command := registerpatron.BuildCommand(patronID, "Ada Lovelace", UniqueEmail(), category, at)

	_, _, err := registerpatron.NewCommandHandler(store).Handle(ctx, command)
	require.NoError(t, err, "error in arranging test fixture: register patron")

	return patronID
}

// GivenBookBorrowed lends a copy of the book to the patron and returns the loan id.
func GivenBookBorrowed(ctx context.Context, t testing.TB, store loanstore.Transactor, bookID, patronID uuid.UUID, at time.Time) uuid.UUID {
	t.Helper()

	loanID := uuid.New()

	_, _, err := borrowbook.NewCommandHandler(store).Handle(ctx, borrowbook.BuildCommand(loanID, bookID, patronID, at))
	require.NoError(t, err, "error in arranging test fixture: borrow book")

	return loanID
}

// GivenLoanReturned returns the loan.
func GivenLoanReturned(ctx context.Context, t testing.TB, store loanstore.Transactor, loanID uuid.UUID, at time.Time) {
	t.Helper()

	_, _, err := returnloan.NewCommandHandler(store).Handle(ctx, returnloan.BuildCommand(loanID, at))
	require.NoError(t, err, "error in arranging test fixture: return loan")
}
