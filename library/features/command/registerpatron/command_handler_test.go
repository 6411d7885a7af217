package registerpatron_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/registerpatron"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memengine"
	"github.com/AntonStoeckl/library-loans-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memengine.NewStore()
	handler := registerpatron.NewCommandHandler(store)
	patronID := uuid.New()

	// act
	result, handlerResult, err := handler.Handle(ctx, registerpatron.BuildCommand(patronID, "Grace Hopper", fixtures.UniqueEmail(), "privileged", fixtures.FixedClock()))

	// assert
	require.NoError(t, err)
	assert.False(t, handlerResult.Idempotent)
	assert.Equal(t, registerpatron.Result{PatronID: patronID, Category: "privileged", BorrowLimit: 5}, result)

	patron, err := store.ReadPatron(ctx, patronID)
	require.NoError(t, err)
	assert.Equal(t, 5, patron.BorrowLimit)

	events, err := store.QueryEvents(ctx, loanstore.BuildJournalFilter(core.PatronRegisteredEventType))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func Test_CommandHandler_Handle_UsesConfiguredPolicy(t *testing.T) {
	// setup
	ctx := context.Background()
	policy := core.DefaultLoanPolicy()
	policy.BorrowLimits = map[core.Category]int{core.CategoryStandard: 2, core.CategoryPrivileged: 8}
	handler := registerpatron.NewCommandHandler(memengine.NewStore(), registerpatron.WithLoanPolicy(policy))

	// act
	result, _, err := handler.Handle(ctx, registerpatron.BuildCommand(uuid.New(), "Grace Hopper", fixtures.UniqueEmail(), "standard", fixtures.FixedClock()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.BorrowLimit)
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	ctx := context.Background()
	store := memengine.NewStore()
	handler := registerpatron.NewCommandHandler(store)
	takenEmail := fixtures.UniqueEmail()
	now := fixtures.FixedClock()

	_, _, err := handler.Handle(ctx, registerpatron.BuildCommand(uuid.New(), "Ada", takenEmail, "standard", now))
	require.NoError(t, err)

	testCases := []struct {
		name        string
		command     registerpatron.Command
		expectedErr error
	}{
		{name: "duplicate email", command: registerpatron.BuildCommand(uuid.New(), "Bob", takenEmail, "standard", now), expectedErr: core.ErrDuplicateEmail},
		{name: "invalid email", command: registerpatron.BuildCommand(uuid.New(), "Bob", "bob-at-example", "standard", now), expectedErr: core.ErrInvalidCommand},
		{name: "unknown category", command: registerpatron.BuildCommand(uuid.New(), "Bob", fixtures.UniqueEmail(), "gold", now), expectedErr: core.ErrUnknownCategory},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, _, err := handler.Handle(ctx, tc.command)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)

			_, readErr := store.ReadPatron(ctx, tc.command.PatronID)
			assert.ErrorIs(t, readErr, loanstore.ErrRecordNotFound)
		})
	}
}
