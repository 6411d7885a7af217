package removepatron_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/removepatron"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

func Test_Decide(t *testing.T) {
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	patron, err := core.BuildPatron(uuid.New(), "Ada Lovelace", "ada@example.com", core.CategoryStandard, core.DefaultLoanPolicy(), now)
	require.NoError(t, err)
	command := removepatron.BuildCommand(patron.PatronID, now.Add(time.Hour))

	t.Run("without loans", func(t *testing.T) {
		// act
		decision := removepatron.Decide(patron, 0, command)

		// assert
		require.NoError(t, decision.HasError())
		assert.Equal(t, core.PatronRemovedEventType, decision.Event.IsEventType())
	})

	t.Run("with returned loans", func(t *testing.T) {
		// act
		decision := removepatron.Decide(patron, 2, command)

		// assert
		assert.ErrorIs(t, decision.HasError(), core.ErrPatronHasLoans)
	})
}
