package addbook_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memengine"
	"github.com/AntonStoeckl/library-loans-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memengine.NewStore()
	handler := addbook.NewCommandHandler(store)
	bookID := uuid.New()
	isbn := fixtures.UniqueISBN()

	// act
	result, handlerResult, err := handler.Handle(ctx, addbook.BuildCommand(bookID, isbn, "Learning Domain-Driven Design", "Vlad Khononov", "O'Reilly Media, Inc.", 2021, 3, fixtures.FixedClock()))

	// assert
	require.NoError(t, err)
	assert.False(t, handlerResult.Idempotent)
	assert.Equal(t, addbook.Result{BookID: bookID, TotalCopies: 3, AvailableCopies: 3}, result)

	book, err := store.ReadBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, isbn, book.ISBN)
	assert.Equal(t, fixtures.FixedClock(), book.CreatedAt)

	events, err := store.QueryEvents(ctx, loanstore.BuildJournalFilter(core.BookAddedToCatalogEventType))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func Test_CommandHandler_Handle_Idempotent_WhenAddedTwice(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memengine.NewStore()
	handler := addbook.NewCommandHandler(store)
	command := addbook.BuildCommand(uuid.New(), fixtures.UniqueISBN(), "Title", "Author", "", 2021, 3, fixtures.FixedClock())
	_, _, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	_, handlerResult, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.True(t, handlerResult.Idempotent)
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	ctx := context.Background()
	store := memengine.NewStore()
	handler := addbook.NewCommandHandler(store)
	takenISBN := fixtures.UniqueISBN()
	now := fixtures.FixedClock()

	_, _, err := handler.Handle(ctx, addbook.BuildCommand(uuid.New(), takenISBN, "Title", "Author", "", 2021, 1, now))
	require.NoError(t, err)

	testCases := []struct {
		name        string
		command     addbook.Command
		expectedErr error
	}{
		{
			name:        "duplicate isbn",
			command:     addbook.BuildCommand(uuid.New(), takenISBN, "Other Title", "Other Author", "", 2022, 1, now),
			expectedErr: core.ErrDuplicateISBN,
		},
		{
			name:        "invalid isbn",
			command:     addbook.BuildCommand(uuid.New(), "9780134190441", "Title", "Author", "", 2021, 1, now),
			expectedErr: core.ErrInvalidCommand,
		},
		{
			name:        "missing title",
			command:     addbook.BuildCommand(uuid.New(), fixtures.UniqueISBN(), "", "Author", "", 2021, 1, now),
			expectedErr: core.ErrInvalidCommand,
		},
		{
			name:        "no copies",
			command:     addbook.BuildCommand(uuid.New(), fixtures.UniqueISBN(), "Title", "Author", "", 2021, 0, now),
			expectedErr: core.ErrInvalidCopyCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, _, err := handler.Handle(ctx, tc.command)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.True(t, core.IsRuleViolation(err))

			_, readErr := store.ReadBook(ctx, tc.command.BookID)
			assert.ErrorIs(t, readErr, loanstore.ErrRecordNotFound, "a rejected add must not store the book")
		})
	}

	allEvents, err := store.QueryEvents(ctx, loanstore.BuildJournalFilter())
	require.NoError(t, err)
	assert.Len(t, allEvents, 1, "rejected commands must not be journaled")

}
