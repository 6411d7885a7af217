package removepatron_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/removepatron"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memengine"
	"github.com/AntonStoeckl/library-loans-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memengine.NewStore()
	handler := removepatron.NewCommandHandler(store)
	now := fixtures.FixedClock()

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour))

	// act
	result, _, err := handler.Handle(ctx, removepatron.BuildCommand(patronID, now))

	// assert
	require.NoError(t, err)
	assert.Equal(t, patronID, result.PatronID)

	_, err = store.ReadPatron(ctx, patronID)
	assert.ErrorIs(t, err, loanstore.ErrRecordNotFound)

	events, err := store.QueryEvents(ctx, loanstore.BuildJournalFilter(core.PatronRemovedEventType))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func Test_CommandHandler_Handle_Error_WhenPatronHasLoans(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memengine.NewStore()
	handler := removepatron.NewCommandHandler(store)
	now := fixtures.FixedClock()

	// arrange
	bookID := fixtures.GivenBookAdded(ctx, t, store, 1, now.Add(-time.Hour))
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour))
	fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now)

	// act
	_, _, err := handler.Handle(ctx, removepatron.BuildCommand(patronID, now.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrPatronHasLoans)
}

func Test_CommandHandler_Handle_Error_UnknownPatron(t *testing.T) {
	// setup
	handler := removepatron.NewCommandHandler(memengine.NewStore())

	// act
	_, _, err := handler.Handle(context.Background(), removepatron.BuildCommand(uuid.New(), fixtures.FixedClock()))

	// assert
	assert.ErrorIs(t, err, core.ErrPatronNotFound)
}
