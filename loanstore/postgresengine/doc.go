// Package postgresengine provides a PostgreSQL implementation of the loan store.
//
// Every command runs inside one read-committed transaction (Store.WithinTx). Records are locked with
// SELECT ... FOR UPDATE before a decision is made, so concurrent borrows of the last copy of a book
// are serialized on the book row. The overdue sweep locks its candidates with FOR UPDATE SKIP LOCKED
// and never waits for live borrow or return traffic.
//
// Serialization failures (40001) and deadlocks (40P01) are reported as loanstore.ErrConcurrencyConflict,
// unique violations (23505) as loanstore.ErrDuplicateRecord.
//
// Supported connection types: pgxpool.Pool (optionally with a read replica), sql.DB and sqlx.DB,
// the latter two with the lib/pq driver.
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(db)
//
//	// With table names, logging and metrics
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithLoansTableName("branch_loans"),
//		postgresengine.WithLogger(slog.Default()),
//		postgresengine.WithMetrics(metricsCollector),
//	)
//
//	err := store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
//		loan, err := tx.LockLoan(ctx, loanID)
//		// ...
//		return tx.UpdateLoan(ctx, loan)
//	})
package postgresengine
