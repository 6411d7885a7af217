package listloans_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/query/listloans"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memengine"
	"github.com/AntonStoeckl/library-loans-go/testutil/fixtures"
)

func Test_QueryHandler_Handle_FiltersByEffectiveStatus(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memengine.NewStore()
	handler := listloans.NewQueryHandler(store)
	now := fixtures.FixedClock()

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-30*24*time.Hour))
	otherPatronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-30*24*time.Hour))
	bookID := fixtures.GivenBookAdded(ctx, t, store, 4, now.Add(-30*24*time.Hour))

	pastDueLoanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-20*24*time.Hour))
	returnedLoanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-2*24*time.Hour))
	fixtures.GivenLoanReturned(ctx, t, store, returnedLoanID, now.Add(-24*time.Hour))
	openLoanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-24*time.Hour))
	otherLoanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, otherPatronID, now.Add(-time.Hour))

	testCases := []struct {
		name     string
		query    listloans.Query
		expected []uuid.UUID
	}{
		{name: "all of the patron, newest first", query: listloans.BuildQuery(patronID, "", 0, now), expected: []uuid.UUID{openLoanID, returnedLoanID, pastDueLoanID}},
		{name: "overdue includes open loans past due", query: listloans.BuildQuery(patronID, "overdue", 0, now), expected: []uuid.UUID{pastDueLoanID}},
		{name: "open excludes loans past due", query: listloans.BuildQuery(patronID, "open", 0, now), expected: []uuid.UUID{openLoanID}},
		{name: "returned", query: listloans.BuildQuery(patronID, "returned", 0, now), expected: []uuid.UUID{returnedLoanID}},
		{name: "every patron", query: listloans.BuildQuery(uuid.Nil, "open", 0, now), expected: []uuid.UUID{otherLoanID, openLoanID}},
		{name: "limited", query: listloans.BuildQuery(uuid.Nil, "", 2, now), expected: []uuid.UUID{otherLoanID, openLoanID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := handler.Handle(ctx, tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, len(tc.expected), result.Count)
			assertLoanIDs(t, tc.expected, result.Loans)
		})
	}

	// listing must not write the overdue transition back
	stored, err := store.QueryLoans(ctx, loanstore.LoanFilter{Statuses: []string{loanstore.LoanStatusOverdue}})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func Test_QueryHandler_Handle_Error_UnknownStatus(t *testing.T) {
	// setup
	handler := listloans.NewQueryHandler(memengine.NewStore())

	// act
	_, err := handler.Handle(context.Background(), listloans.BuildQuery(uuid.Nil, "lost", 0, fixtures.FixedClock()))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidQuery)
}

func assertLoanIDs(t *testing.T, expected []uuid.UUID, actual []listloans.LoanInfo) {
	t.Helper()

	actualIDs := make([]string, 0, len(actual))
	for _, info := range actual {
		actualIDs = append(actualIDs, info.LoanID)
	}

	expectedIDs := make([]string, 0, len(expected))
	for _, id := range expected {
		expectedIDs = append(expectedIDs, id.String())
	}

	assert.Equal(t, expectedIDs, actualIDs)
}
