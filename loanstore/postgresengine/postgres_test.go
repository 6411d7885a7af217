package postgresengine_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/sweepoverdue"
	"github.com/AntonStoeckl/library-loans-go/library/features/query/listloans"
	"github.com/AntonStoeckl/library-loans-go/library/features/query/loanhistory"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine"
	"github.com/AntonStoeckl/library-loans-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-loans-go/testutil/observability/testdoubles"
	. "github.com/AntonStoeckl/library-loans-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

var errAbort = errors.New("abort")

func Test_FactoryFunctions_ShouldFail_WithNilDatabaseConnection(t *testing.T) {
	testCases := []struct {
		name        string
		factoryFunc func() (*postgresengine.Store, error)
	}{
		{
			name: "NewStoreFromPGXPool with nil",
			factoryFunc: func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromPGXPool(nil)
			},
		},
		{
			name: "NewStoreFromPGXPoolAndReplica with nil replica",
			factoryFunc: func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromPGXPoolAndReplica(&pgxpool.Pool{}, nil)
			},
		},
		{
			name: "NewStoreFromSQLDB with nil",
			factoryFunc: func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromSQLDB(nil)
			},
		},
		{
			name: "NewStoreFromSQLX with nil",
			factoryFunc: func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromSQLX(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			store, err := tc.factoryFunc()

			// assert
			assert.ErrorIs(t, err, loanstore.ErrNilDatabaseConnection)
			assert.Nil(t, store)
		})
	}
}

func Test_FactoryFunctions_ShouldFail_WithEmptyTableName(t *testing.T) {
	// setup
	db, err := sql.Open("postgres", config.PostgresDSN()) // does not connect
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	testCases := []struct {
		name   string
		option postgresengine.Option
	}{
		{name: "books", option: postgresengine.WithBooksTableName("")},
		{name: "patrons", option: postgresengine.WithPatronsTableName("")},
		{name: "loans", option: postgresengine.WithLoansTableName("")},
		{name: "events", option: postgresengine.WithEventsTableName("")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, sqlDBErr := postgresengine.NewStoreFromSQLDB(db, tc.option)
			_, sqlxErr := postgresengine.NewStoreFromSQLX(sqlx.NewDb(db, "postgres"), tc.option)

			// assert
			assert.ErrorIs(t, sqlDBErr, loanstore.ErrEmptyTableName)
			assert.ErrorIs(t, sqlxErr, loanstore.ErrEmptyTableName)
		})
	}
}

func Test_WithinTx_BorrowAndReturn_PersistsStateAndJournal(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour))
	bookID := fixtures.GivenBookAdded(ctx, t, store, 2, now.Add(-time.Hour))

	// act
	loanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now)

	// assert
	book, err := store.ReadBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 2, book.TotalCopies)
	assert.Equal(t, 1, book.AvailableCopies)

	loans, err := store.QueryLoans(ctx, loanstore.LoanFilter{PatronID: patronID})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, loanID, loans[0].LoanID)
	assert.Equal(t, loanstore.LoanStatusOpen, loans[0].Status)
	assert.True(t, now.Equal(loans[0].BorrowedAt))
	assert.True(t, now.Add(14*24*time.Hour).Equal(loans[0].DueAt))
	assert.Nil(t, loans[0].ReturnedAt)

	// act
	fixtures.GivenLoanReturned(ctx, t, store, loanID, now.Add(24*time.Hour))

	// assert
	book, err = store.ReadBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 2, book.AvailableCopies)

	loans, err = store.QueryLoans(ctx, loanstore.LoanFilter{PatronID: patronID})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, loanstore.LoanStatusReturned, loans[0].Status)
	require.NotNil(t, loans[0].ReturnedAt)
	assert.True(t, now.Add(24*time.Hour).Equal(*loans[0].ReturnedAt))

	assert.Equal(t, 4, CountRows(t, wrapper, "loan_events"))
}

func Test_WithinTx_RollsBackOnError(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()

	// act
	err := store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
		insertErr := tx.InsertBook(ctx, loanstore.BookRecord{
			BookID:          uuid.New(),
			ISBN:            fixtures.UniqueISBN(),
			Title:           "Learning Go",
			Author:          "Bodner",
			TotalCopies:     1,
			AvailableCopies: 1,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		require.NoError(t, insertErr)

		return errAbort
	})

	// assert
	assert.ErrorIs(t, err, errAbort)
	assert.Equal(t, 0, CountRows(t, wrapper, "books"))
}

func Test_WithinTx_ConcurrentBorrowOfLastCopy_OnlyOneSucceeds(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()
	handler := borrowbook.NewCommandHandler(store)

	// arrange
	bookID := fixtures.GivenBookAdded(ctx, t, store, 1, now.Add(-time.Hour))
	patronIDs := []uuid.UUID{
		fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour)),
		fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour)),
	}

	// act
	errs := make([]error, len(patronIDs))
	var wg sync.WaitGroup
	for i, patronID := range patronIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = handler.Handle(ctx, borrowbook.BuildCommand(uuid.New(), bookID, patronID, now))
		}()
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, core.ErrOutOfStock)
	}
	assert.Equal(t, 1, succeeded)

	book, err := store.ReadBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 0, book.AvailableCopies)
	assert.Equal(t, 1, CountRows(t, wrapper, "loans"))
}

func Test_InsertBook_WithDuplicateISBN_IsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()
	handler := addbook.NewCommandHandler(store)
	isbn := fixtures.UniqueISBN()

	// arrange
	_, _, err := handler.Handle(ctx, addbook.BuildCommand(uuid.New(), isbn, "Learning Go", "Bodner", "O'Reilly", 2021, 1, now))
	require.NoError(t, err)

	// act
	_, _, err = handler.Handle(ctx, addbook.BuildCommand(uuid.New(), isbn, "Learning Go", "Bodner", "O'Reilly", 2021, 1, now))

	// assert
	assert.ErrorIs(t, err, core.ErrDuplicateISBN)
	assert.Equal(t, 1, CountRows(t, wrapper, "books"))
}

func Test_RemoveBook_WithLoans_IsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour))
	bookID := fixtures.GivenBookAdded(ctx, t, store, 1, now.Add(-time.Hour))
	loanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-time.Hour))
	fixtures.GivenLoanReturned(ctx, t, store, loanID, now)

	// act
	_, _, err := removebook.NewCommandHandler(store).Handle(ctx, removebook.BuildCommand(bookID, now))

	// assert
	assert.ErrorIs(t, err, core.ErrBookHasLoans)
	assert.Equal(t, 1, CountRows(t, wrapper, "books"))
}

func Test_SweepOverdue_TransitionsLoansPastDue(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()
	handler := sweepoverdue.NewCommandHandler(store)

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryPrivileged, now.Add(-30*24*time.Hour))
	bookID := fixtures.GivenBookAdded(ctx, t, store, 3, now.Add(-30*24*time.Hour))
	pastDueLoanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-20*24*time.Hour))
	freshLoanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-24*time.Hour))

	// act
	result, _, err := handler.Handle(ctx, sweepoverdue.BuildCommand(now, 10))
	require.NoError(t, err)
	again, _, againErr := handler.Handle(ctx, sweepoverdue.BuildCommand(now, 10))
	require.NoError(t, againErr)

	// assert
	assert.Equal(t, 1, result.Transitioned)
	assert.Equal(t, 0, again.Transitioned)

	loans, err := store.QueryLoans(ctx, loanstore.LoanFilter{PatronID: patronID})
	require.NoError(t, err)
	statuses := make(map[uuid.UUID]string, len(loans))
	for _, loan := range loans {
		statuses[loan.LoanID] = loan.Status
	}
	assert.Equal(t, loanstore.LoanStatusOverdue, statuses[pastDueLoanID])
	assert.Equal(t, loanstore.LoanStatusOpen, statuses[freshLoanID])
}

func Test_ListLoans_ReturnsNewestFirst(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour))
	bookID := fixtures.GivenBookAdded(ctx, t, store, 3, now.Add(-time.Hour))
	first := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-3*time.Minute))
	second := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-2*time.Minute))
	third := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now.Add(-time.Minute))

	// act
	result, err := listloans.NewQueryHandler(store).Handle(ctx, listloans.BuildQuery(patronID, "", 0, now))

	// assert
	require.NoError(t, err)
	require.Equal(t, 3, result.Count)
	assert.Equal(t, third.String(), result.Loans[0].LoanID)
	assert.Equal(t, second.String(), result.Loans[1].LoanID)
	assert.Equal(t, first.String(), result.Loans[2].LoanID)
}

func Test_LoanHistory_FiltersJournalByPayload(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	store := wrapper.GetStore()
	now := fixtures.FixedClock()

	// arrange
	patronID := fixtures.GivenPatronRegistered(ctx, t, store, fixtures.CategoryStandard, now.Add(-time.Hour))
	bookID := fixtures.GivenBookAdded(ctx, t, store, 2, now.Add(-time.Hour))
	otherBookID := fixtures.GivenBookAdded(ctx, t, store, 2, now.Add(-time.Hour))
	loanID := fixtures.GivenBookBorrowed(ctx, t, store, bookID, patronID, now)
	fixtures.GivenBookBorrowed(ctx, t, store, otherBookID, patronID, now)
	fixtures.GivenLoanReturned(ctx, t, store, loanID, now.Add(time.Hour))

	// act
	history, err := loanhistory.NewQueryHandler(store).Handle(ctx, loanhistory.ForBook(bookID))

	// assert
	require.NoError(t, err)
	require.Equal(t, 3, history.Count)
	assert.Equal(t, core.BookAddedToCatalogEventType, history.Entries[0].EventType)
	assert.Equal(t, core.BookBorrowedEventType, history.Entries[1].EventType)
	assert.Equal(t, core.LoanReturnedEventType, history.Entries[2].EventType)
	for i := 1; i < len(history.Entries); i++ {
		assert.Greater(t, history.Entries[i].SequenceNumber, history.Entries[i-1].SequenceNumber)
	}
}

func Test_Observability_RecordsTxMetricsAndSpans(t *testing.T) {
	// setup
	ctx := context.Background()
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
	tracingSpy := testdoubles.NewTracingCollectorSpy(true)
	wrapper := CreateWrapperWithTestConfig(t, postgresengine.WithMetrics(metricsSpy), postgresengine.WithTracing(tracingSpy))
	store := wrapper.GetStore()
	now := fixtures.FixedClock()

	// act
	bookID := fixtures.GivenBookAdded(ctx, t, store, 1, now)
	_, readErr := store.ReadBook(ctx, bookID)
	_, notFoundErr := store.ReadBook(ctx, uuid.New())
	rollbackErr := store.WithinTx(ctx, func(context.Context, loanstore.Tx) error { return errAbort })

	// assert
	require.NoError(t, readErr)
	assert.ErrorIs(t, notFoundErr, loanstore.ErrRecordNotFound)
	assert.ErrorIs(t, rollbackErr, errAbort)

	assert.True(t, metricsSpy.HasDurationRecordForMetric("loanstore_tx_duration_seconds").WithStatus("committed").WithOperation("tx").Assert())
	assert.True(t, metricsSpy.HasDurationRecordForMetric("loanstore_tx_duration_seconds").WithStatus("rolled_back").Assert())
	assert.True(t, tracingSpy.HasSpanRecordForName("loanstore.tx").WithStatus("committed").Assert())
	assert.True(t, tracingSpy.HasSpanRecordForName("loanstore.read").WithStartAttribute("operation", "read_book").WithStatus("success").Assert())
	assert.True(t, tracingSpy.HasSpanRecordForName("loanstore.read").WithStatus("not_found").Assert())
}
