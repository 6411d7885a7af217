package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AntonStoeckl/library-loans-go/library/cmd/internal/bootstrap"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memengine"
)

func Test_LoadGenerator_Run_KeepsLedgerConsistent(t *testing.T) {
	defer goleak.VerifyNone(t)

	// setup
	store := memengine.NewStore()
	handlers, err := NewHandlers(store, core.DefaultLoanPolicy(), bootstrap.Observability{})
	require.NoError(t, err)

	loadGen := NewLoadGenerator(handlers, Config{
		Rate:            500,
		Workers:         4,
		InitialBooks:    5,
		InitialPatrons:  4,
		CopiesPerBook:   2,
		ScenarioWeights: []int{50, 30, 10, 10},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	// act
	err = loadGen.Run(ctx)

	// assert
	require.NoError(t, err)

	stats := loadGen.Stats()
	assert.Positive(t, stats.Requests)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, stats.Requests, stats.Succeeded+stats.Rejected)

	for _, bookID := range loadGen.bookIDs {
		book, readErr := store.ReadBook(context.Background(), bookID)
		require.NoError(t, readErr)

		activeLoans, queryErr := store.QueryLoans(context.Background(), loanstore.LoanFilter{
			BookID:   bookID,
			Statuses: loanstore.ActiveLoanStatuses(),
		})
		require.NoError(t, queryErr)

		assert.GreaterOrEqual(t, book.AvailableCopies, 0)
		assert.Equal(t, book.TotalCopies-book.AvailableCopies, len(activeLoans), "copies on loan should match the active loans")
	}
}

func Test_ParseScenarioWeights(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "valid", input: "50, 30, 10, 10", want: []int{50, 30, 10, 10}},
		{name: "too few", input: "50,50", wantErr: true},
		{name: "not a number", input: "50,30,x,10", wantErr: true},
		{name: "out of range", input: "120,0,0,0", wantErr: true},
		{name: "wrong total", input: "50,30,10,0", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			weights, err := parseScenarioWeights(tc.input)

			// assert
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, weights)
		})
	}
}

func Test_RandomISBN_HasValidCheckDigit(t *testing.T) {
	for range 20 {
		isbn := randomISBN()

		require.Len(t, isbn, 13)

		sum := 0
		for i, r := range isbn {
			d := int(r - '0')
			if i%2 == 1 {
				d *= 3
			}
			sum += d
		}

		assert.Zero(t, sum%10, isbn)
	}
}
