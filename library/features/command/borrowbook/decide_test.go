package borrowbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

func Test_Decide_Success_WhenCopyAvailableAndPatronBelowLimit(t *testing.T) {
	// arrange
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenState(t, 2, 0, now)
	command := borrowbook.BuildCommand(uuid.New(), state.Book.BookID, state.Patron.PatronID, now)

	// act
	decision := borrowbook.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	require.NoError(t, decision.HasError())
	require.True(t, decision.HasEventToAppend())
	assert.Equal(t, core.BookBorrowedEventType, decision.Event.IsEventType())
	assert.Equal(t, 1, decision.Book.AvailableCopies(), "one copy should be reserved")
	assert.Equal(t, 2, decision.Book.TotalCopies())
	assert.Equal(t, core.LoanOpen, decision.Loan.Status())
	assert.Equal(t, now.Add(14*24*time.Hour), decision.Loan.DueAt(), "loan should be due after 14 days")
}

func Test_Decide_Error_WhenNoCopyAvailable(t *testing.T) {
	// arrange
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenState(t, 1, 0, now)
	state.Book = givenAllCopiesLent(t, state.Book)
	command := borrowbook.BuildCommand(uuid.New(), state.Book.BookID, state.Patron.PatronID, now)

	// act
	decision := borrowbook.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	assert.ErrorIs(t, decision.HasError(), core.ErrOutOfStock)
	assert.False(t, decision.HasEventToAppend())
}

func Test_Decide_Error_WhenPatronReachedBorrowLimit(t *testing.T) {
	// arrange
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenState(t, 1, 3, now)
	command := borrowbook.BuildCommand(uuid.New(), state.Book.BookID, state.Patron.PatronID, now)

	// act
	decision := borrowbook.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	assert.ErrorIs(t, decision.HasError(), core.ErrBorrowLimitExceeded)
}

func Test_Decide_Error_BorrowLimitIsCheckedBeforeStock(t *testing.T) {
	// arrange
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenState(t, 1, 3, now)
	state.Book = givenAllCopiesLent(t, state.Book)
	command := borrowbook.BuildCommand(uuid.New(), state.Book.BookID, state.Patron.PatronID, now)

	// act
	decision := borrowbook.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	assert.ErrorIs(t, decision.HasError(), core.ErrBorrowLimitExceeded)
	assert.NotErrorIs(t, decision.HasError(), core.ErrOutOfStock)
}

func Test_Decide_Idempotent_WhenLoanAlreadyExistsForSameBookAndPatron(t *testing.T) {
	// arrange
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenState(t, 1, 1, now)
	loanID := uuid.New()
	existing := core.OpenLoan(loanID, state.Book.BookID, state.Patron.PatronID, now.Add(-time.Hour), core.DefaultLoanPolicy())
	state.ExistingLoan = &existing
	command := borrowbook.BuildCommand(loanID, state.Book.BookID, state.Patron.PatronID, now)

	// act
	decision := borrowbook.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	assert.NoError(t, decision.HasError())
	assert.True(t, decision.IsIdempotent())
	assert.Equal(t, existing.DueAt(), decision.Loan.DueAt())
}

func Test_Decide_Error_WhenLoanIDIsUsedForAnotherBook(t *testing.T) {
	// arrange
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenState(t, 1, 0, now)
	loanID := uuid.New()
	existing := core.OpenLoan(loanID, uuid.New(), state.Patron.PatronID, now.Add(-time.Hour), core.DefaultLoanPolicy())
	state.ExistingLoan = &existing
	command := borrowbook.BuildCommand(loanID, state.Book.BookID, state.Patron.PatronID, now)

	// act
	decision := borrowbook.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	assert.ErrorIs(t, decision.HasError(), core.ErrInvalidCommand)
}

func givenState(t *testing.T, totalCopies int, activeLoanCount int, at time.Time) borrowbook.State {
	t.Helper()

	book, err := core.BuildBook(uuid.New(), "9780134190440", "The Go Programming Language", "Donovan", "", 2015, totalCopies, at)
	require.NoError(t, err)

	patron, err := core.BuildPatron(uuid.New(), "Ada", "ada@example.org", core.CategoryStandard, core.DefaultLoanPolicy(), at)
	require.NoError(t, err)

	return borrowbook.State{
		Patron:          patron,
		ActiveLoanCount: activeLoanCount,
		Book:            book,
	}
}

func givenAllCopiesLent(t *testing.T, book core.Book) core.Book {
	t.Helper()

	for book.AvailableCopies() > 0 {
		var err error
		book, err = core.ReserveCopy(book)
		require.NoError(t, err)
	}

	return book
}
