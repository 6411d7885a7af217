package removebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

func Test_Decide(t *testing.T) {
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	book, err := core.BuildBook(uuid.New(), "9780134190440", "Title", "Author", "", 2015, 1, now)
	require.NoError(t, err)
	command := removebook.BuildCommand(book.BookID, now.Add(time.Hour))

	t.Run("without loans", func(t *testing.T) {
		// act
		decision := removebook.Decide(book, 0, command)

		// assert
		require.NoError(t, decision.HasError())
		assert.Equal(t, core.BookRemovedFromCatalogEventType, decision.Event.IsEventType())
	})

	t.Run("with loans", func(t *testing.T) {
		// act
		decision := removebook.Decide(book, 1, command)

		// assert
		assert.ErrorIs(t, decision.HasError(), core.ErrBookHasLoans)
	})
}
