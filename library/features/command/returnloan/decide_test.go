package returnloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

func Test_Decide_Success_OnTimeReturnHasNoFee(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenLentState(t, borrowedAt)
	command := returnloan.BuildCommand(state.Loan.LoanID, borrowedAt.Add(10*24*time.Hour))

	// act
	decision := returnloan.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	require.NoError(t, decision.HasError())
	assert.Equal(t, core.LoanReturnedEventType, decision.Event.IsEventType())
	assert.Equal(t, core.LoanReturned, decision.Loan.Status())
	assert.Equal(t, core.Money(0), decision.LateFee)
	assert.Equal(t, 1, decision.Book.AvailableCopies(), "the copy should be back on the shelf")
}

func Test_Decide_Success_ThreeDaysLateCostsThreeUnits(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenLentState(t, borrowedAt)
	command := returnloan.BuildCommand(state.Loan.LoanID, state.Loan.DueAt().Add(3*24*time.Hour))

	// act
	decision := returnloan.Decide(state, command, core.DefaultLoanPolicy())

	// assert
	require.NoError(t, decision.HasError())
	assert.Equal(t, core.Money(300), decision.LateFee)
	assert.Equal(t, "3.00", decision.LateFee.String())
	assert.Equal(t, core.LoanReturned, decision.Loan.Status())

	event, ok := decision.Event.(core.LoanWasReturned)
	require.True(t, ok)
	assert.Equal(t, int64(300), event.LateFeeCents)
}

func Test_Decide_Error_WhenAlreadyReturned(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenLentState(t, borrowedAt)
	first := returnloan.Decide(state, returnloan.BuildCommand(state.Loan.LoanID, borrowedAt.Add(time.Hour)), core.DefaultLoanPolicy())
	require.NoError(t, first.HasError())
	state = returnloan.State{Book: first.Book, Loan: first.Loan}

	// act
	decision := returnloan.Decide(state, returnloan.BuildCommand(state.Loan.LoanID, borrowedAt.Add(2*time.Hour)), core.DefaultLoanPolicy())

	// assert
	assert.ErrorIs(t, decision.HasError(), core.ErrAlreadyReturned)
}

func Test_Decide_Error_WhenBookHasNoCopyOnLoan(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	state := givenLentState(t, borrowedAt)
	book, err := core.BuildBook(state.Book.BookID, state.Book.ISBN, state.Book.Title, state.Book.Author, "", 2015, 1, borrowedAt)
	require.NoError(t, err)
	state.Book = book

	// act
	decision := returnloan.Decide(state, returnloan.BuildCommand(state.Loan.LoanID, borrowedAt.Add(time.Hour)), core.DefaultLoanPolicy())

	// assert
	assert.ErrorIs(t, decision.HasError(), core.ErrOverRelease)
	assert.True(t, core.IsInvariantViolation(decision.HasError()))
}

func givenLentState(t *testing.T, borrowedAt time.Time) returnloan.State {
	t.Helper()

	book, err := core.BuildBook(uuid.New(), "9780134190440", "The Go Programming Language", "Donovan", "", 2015, 1, borrowedAt)
	require.NoError(t, err)

	book, err = core.ReserveCopy(book)
	require.NoError(t, err)

	return returnloan.State{
		Book: book,
		Loan: core.OpenLoan(uuid.New(), book.BookID, uuid.New(), borrowedAt, core.DefaultLoanPolicy()),
	}
}
