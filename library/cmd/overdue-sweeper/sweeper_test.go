package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/sweepoverdue"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memengine"
	"github.com/AntonStoeckl/library-loans-go/testutil/fixtures"
)

func Test_Sweeper_SweepOnce(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memengine.NewStore()
	borrowedAt := fixtures.FixedClock()

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, borrowedAt)
	bookID := fixtures.GivenBookAdded(ctx, t, store, 2, borrowedAt)
	loanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, borrowedAt)

	sweeper := NewSweeper(sweepoverdue.NewCommandHandler(store), 10, func() time.Time {
		return borrowedAt.Add(15 * 24 * time.Hour)
	})

	// act
	first, firstErr := sweeper.SweepOnce(ctx)
	second, secondErr := sweeper.SweepOnce(ctx)

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second, "a second sweep should find nothing to do")

	overdue, err := store.QueryLoans(ctx, loanstore.LoanFilter{Statuses: []string{loanstore.LoanStatusOverdue}})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, loanID, overdue[0].LoanID)
}

func Test_Sweeper_Run_StopsWhenContextIsDone(t *testing.T) {
	defer goleak.VerifyNone(t)

	// setup
	ctx, cancel := context.WithCancel(context.Background())
	sweeper := NewSweeper(sweepoverdue.NewCommandHandler(memengine.NewStore()), 10, time.Now)

	done := make(chan error, 1)

	// act
	go func() {
		done <- sweeper.Run(ctx, 10*time.Millisecond)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	// assert
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
