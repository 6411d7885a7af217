package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

func Test_BuildPatron_LimitFromCategory(t *testing.T) {
	testCases := []struct {
		category      core.Category
		expectedLimit int
	}{
		{category: core.CategoryStandard, expectedLimit: 3},
		{category: core.CategoryPrivileged, expectedLimit: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.category.String(), func(t *testing.T) {
			patron, err := core.BuildPatron(uuid.New(), "Jane Doe", "jane@example.com", tc.category, core.DefaultLoanPolicy(), time.Now())

			require.NoError(t, err)
			assert.Equal(t, tc.expectedLimit, patron.BorrowLimit)
		})
	}
}

func Test_BuildPatron_UnknownCategory(t *testing.T) {
	_, err := core.BuildPatron(uuid.New(), "Jane Doe", "jane@example.com", core.Category(42), core.DefaultLoanPolicy(), time.Now())

	assert.ErrorIs(t, err, core.ErrUnknownCategory)
}

func Test_CanBorrow(t *testing.T) {
	patron := givenPatron(t, core.CategoryStandard)

	assert.True(t, core.CanBorrow(patron, 0))
	assert.True(t, core.CanBorrow(patron, 2))
	assert.False(t, core.CanBorrow(patron, 3))
	assert.False(t, core.CanBorrow(patron, 4))
}

func Test_CountActive(t *testing.T) {
	// arrange
	policy := core.DefaultLoanPolicy()
	open := core.OpenLoan(uuid.New(), uuid.New(), uuid.New(), borrowedAt, policy)
	overdue, _, err := core.MarkOverdue(open, open.DueAt().Add(time.Hour))
	require.NoError(t, err)
	returned, _, err := core.Return(open, borrowedAt.Add(time.Hour), policy)
	require.NoError(t, err)

	// act
	count := core.CountActive([]core.Loan{open, overdue, returned, returned})

	// assert
	assert.Equal(t, 2, count)
}

func Test_ChangeCategory(t *testing.T) {
	permissive := core.DefaultLoanPolicy()
	permissive.AllowCategoryChangeOverLimit = true

	testCases := []struct {
		name            string
		from            core.Category
		to              core.Category
		activeLoans     int
		reevaluate      bool
		policy          core.LoanPolicy
		expectedErr     error
		expectedChanged bool
		expectedLimit   int
	}{
		{
			name: "upgrade with re-evaluation", from: core.CategoryStandard, to: core.CategoryPrivileged,
			activeLoans: 3, reevaluate: true, policy: core.DefaultLoanPolicy(),
			expectedChanged: true, expectedLimit: 5,
		},
		{
			name: "upgrade keeps limit without re-evaluation", from: core.CategoryStandard, to: core.CategoryPrivileged,
			activeLoans: 0, reevaluate: false, policy: core.DefaultLoanPolicy(),
			expectedChanged: true, expectedLimit: 3,
		},
		{
			name: "downgrade over the new limit", from: core.CategoryPrivileged, to: core.CategoryStandard,
			activeLoans: 4, reevaluate: true, policy: core.DefaultLoanPolicy(),
			expectedErr: core.ErrPolicyViolation, expectedLimit: 5,
		},
		{
			name: "downgrade at the new limit", from: core.CategoryPrivileged, to: core.CategoryStandard,
			activeLoans: 3, reevaluate: true, policy: core.DefaultLoanPolicy(),
			expectedChanged: true, expectedLimit: 3,
		},
		{
			name: "downgrade over the new limit when allowed", from: core.CategoryPrivileged, to: core.CategoryStandard,
			activeLoans: 5, reevaluate: true, policy: permissive,
			expectedChanged: true, expectedLimit: 3,
		},
		{
			name: "same category is idempotent", from: core.CategoryStandard, to: core.CategoryStandard,
			activeLoans: 1, reevaluate: true, policy: core.DefaultLoanPolicy(),
			expectedChanged: false, expectedLimit: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			patron := givenPatron(t, tc.from)

			// act
			updated, changed, err := core.ChangeCategory(patron, tc.to, tc.activeLoans, tc.reevaluate, tc.policy, time.Now())

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, tc.from, updated.Category)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Category)
			}

			assert.Equal(t, tc.expectedChanged, changed)
			assert.Equal(t, tc.expectedLimit, updated.BorrowLimit)
		})
	}
}

func Test_ParseCategory(t *testing.T) {
	category, err := core.ParseCategory("privileged")
	require.NoError(t, err)
	assert.Equal(t, core.CategoryPrivileged, category)

	_, err = core.ParseCategory("STUDENT")
	assert.ErrorIs(t, err, core.ErrUnknownCategory)
}

func givenPatron(t *testing.T, category core.Category) core.Patron {
	t.Helper()

	patron, err := core.BuildPatron(uuid.New(), "John Doe", "john@example.com", category, core.DefaultLoanPolicy(), time.Unix(0, 0))
	require.NoError(t, err)

	return patron
}
