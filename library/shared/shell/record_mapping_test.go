package shell_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

var recordTime = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

func Test_BookFromRecord_RoundTrip(t *testing.T) {
	// arrange
	record := loanstore.BookRecord{
		BookID:          uuid.New(),
		ISBN:            "9780262033848",
		Title:           "Introduction to Algorithms",
		Author:          "Cormen et al.",
		Publisher:       "MIT Press",
		PublicationYear: 2009,
		TotalCopies:     4,
		AvailableCopies: 1,
		CreatedAt:       recordTime,
		UpdatedAt:       recordTime,
	}

	// act
	book, err := shell.BookFromRecord(record)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 4, book.TotalCopies())
	assert.Equal(t, 1, book.AvailableCopies())
	assert.Equal(t, 3, book.CopiesOnLoan())
	assert.Equal(t, record, shell.BookRecordFrom(book, record.CreatedAt))
}

func Test_BookFromRecord_RejectsBrokenLedger(t *testing.T) {
	// arrange
	record := loanstore.BookRecord{BookID: uuid.New(), TotalCopies: 2, AvailableCopies: 3}

	// act
	_, err := shell.BookFromRecord(record)

	// assert
	assert.True(t, core.IsInvariantViolation(err))
}

func Test_PatronFromRecord_RoundTrip(t *testing.T) {
	// arrange
	record := loanstore.PatronRecord{
		PatronID:    uuid.New(),
		Name:        "Grace",
		Email:       "grace@example.org",
		Category:    "privileged",
		BorrowLimit: 5,
		CreatedAt:   recordTime,
		UpdatedAt:   recordTime,
	}

	// act
	patron, err := shell.PatronFromRecord(record)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.CategoryPrivileged, patron.Category)
	assert.Equal(t, record, shell.PatronRecordFrom(patron, record.CreatedAt))
}

func Test_PatronFromRecord_UnknownStoredCategoryIsAnInvariantViolation(t *testing.T) {
	// arrange
	record := loanstore.PatronRecord{PatronID: uuid.New(), Category: "gold"}

	// act
	_, err := shell.PatronFromRecord(record)

	// assert
	assert.True(t, core.IsInvariantViolation(err))
	assert.False(t, core.IsRuleViolation(err))
}

func Test_LoanFromRecord_RoundTrip(t *testing.T) {
	returnedAt := recordTime.Add(20 * 24 * time.Hour)

	testCases := []struct {
		name   string
		record loanstore.LoanRecord
	}{
		{
			name: "open",
			record: loanstore.LoanRecord{
				LoanID: uuid.New(), BookID: uuid.New(), PatronID: uuid.New(),
				BorrowedAt: recordTime, DueAt: recordTime.Add(14 * 24 * time.Hour),
				Status: loanstore.LoanStatusOpen,
			},
		},
		{
			name: "overdue with extension",
			record: loanstore.LoanRecord{
				LoanID: uuid.New(), BookID: uuid.New(), PatronID: uuid.New(),
				BorrowedAt: recordTime, DueAt: recordTime.Add(21 * 24 * time.Hour),
				Status: loanstore.LoanStatusOverdue, Extensions: 1,
			},
		},
		{
			name: "returned",
			record: loanstore.LoanRecord{
				LoanID: uuid.New(), BookID: uuid.New(), PatronID: uuid.New(),
				BorrowedAt: recordTime, DueAt: recordTime.Add(14 * 24 * time.Hour),
				ReturnedAt: &returnedAt, Status: loanstore.LoanStatusReturned,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			loan, err := shell.LoanFromRecord(tc.record)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.record, shell.LoanRecordFrom(loan))
		})
	}
}

func Test_LoanFromRecord_RejectsCorruptState(t *testing.T) {
	testCases := []struct {
		name   string
		status string
	}{
		{name: "unknown status", status: "lost"},
		{name: "returned without timestamp", status: loanstore.LoanStatusReturned},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			record := loanstore.LoanRecord{
				LoanID: uuid.New(), BookID: uuid.New(), PatronID: uuid.New(),
				BorrowedAt: recordTime, DueAt: recordTime.Add(time.Hour), Status: tc.status,
			}

			// act
			_, err := shell.LoanFromRecord(record)

			// assert
			assert.ErrorIs(t, err, core.ErrCorruptLoanState)
		})
	}
}

func Test_NotFoundAs(t *testing.T) {
	otherErr := errors.New("connection reset")

	assert.ErrorIs(t, shell.NotFoundAs(errors.Join(loanstore.ErrRecordNotFound), core.ErrBookNotFound), core.ErrBookNotFound)
	assert.Equal(t, otherErr, shell.NotFoundAs(otherErr, core.ErrBookNotFound))
	assert.NoError(t, shell.NotFoundAs(nil, core.ErrBookNotFound))
}

func Test_DuplicateAs(t *testing.T) {
	otherErr := errors.New("connection reset")

	assert.ErrorIs(t, shell.DuplicateAs(loanstore.ErrDuplicateRecord, core.ErrDuplicateISBN), core.ErrDuplicateISBN)
	assert.Equal(t, otherErr, shell.DuplicateAs(otherErr, core.ErrDuplicateISBN))
}
