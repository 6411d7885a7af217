package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName   = "books"
	defaultPatronsTableName = "patrons"
	defaultLoansTableName   = "loans"
	defaultEventsTableName  = "loan_events"
)

type tableNames struct {
	books   string
	patrons string
	loans   string
	events  string
}

// Store is the PostgreSQL loan store. It is safe for concurrent use.
type Store struct {
	db               adapters.DBAdapter
	tables           tableNames
	logger           loanstore.Logger
	contextualLogger loanstore.ContextualLogger
	metricsCollector loanstore.MetricsCollector
	tracingCollector loanstore.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary pgx Pool and a replica Pool.
// Reads run on the replica when the context carries loanstore.WithEventualConsistency.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, loanstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db: db,
		tables: tableNames{
			books:   defaultBooksTableName,
			patrons: defaultPatronsTableName,
			loans:   defaultLoansTableName,
			events:  defaultEventsTableName,
		},
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WithinTx runs fn inside one read-committed transaction.
// The transaction commits if fn returns nil and rolls back otherwise; fn's error is returned unchanged.
func (s *Store) WithinTx(ctx context.Context, fn loanstore.TxFunc) error {
	tracing, ctx := s.startTxTracing(ctx)
	metrics := s.startTxMetrics(ctx)
	start := time.Now()

	err := s.runTx(ctx, fn)
	duration := time.Since(start)

	if err != nil {
		status := txStatusFor(err)
		tracing.finish(status, duration)
		metrics.record(status, duration)

		if status == statusConcurrencyConflict {
			s.logOperation(ctx, logMsgConcurrencyConflict, logAttrDurationMS, toMilliseconds(duration))
		}

		return err
	}

	tracing.finish(statusCommitted, duration)
	metrics.record(statusCommitted, duration)
	s.logOperation(ctx, logMsgTxCommitted, logAttrDurationMS, toMilliseconds(duration))

	return nil
}

func (s *Store) runTx(ctx context.Context, fn loanstore.TxFunc) error {
	dbTx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(ctx, logMsgBeginTxFailed, beginErr)
		return errors.Join(loanstore.ErrBeginTxFailed, mapDBError(beginErr))
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		if rollbackErr := dbTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			s.logWarn(ctx, logMsgRollbackFailed, rollbackErr)
		}
	}()

	if err := fn(ctx, &tx{store: s, q: dbTx}); err != nil {
		return err
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitFailed, commitErr)
		return errors.Join(loanstore.ErrCommitFailed, mapDBError(commitErr))
	}

	committed = true

	return nil
}
