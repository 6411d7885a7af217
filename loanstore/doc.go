// Package loanstore provides the storage abstractions shared by the loan engine's storage backends.
//
// It defines the flat, database-shaped records for books, patrons and loans, the append-only
// journal entry (StorableEvent), the transactional Tx contract that all engines implement,
// the observability interfaces, and the infrastructure error definitions.
//
// The records are intentionally built on scalars (plus uuid.UUID and time.Time) so that this package
// stays agnostic of the domain model in library/shared/core. The imperative shell maps between both.
//
// Engines:
//   - postgresengine: PostgreSQL via pgx.Pool, sql.DB or sqlx.DB, row-level locking with SELECT ... FOR UPDATE
//   - memengine: in-memory, transactions serialized by a store-wide lock (tests, demos)
//
// Common usage pattern:
//
//	err := store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
//		book, err := tx.LockBook(ctx, bookID)
//		if err != nil {
//			return err
//		}
//
//		book.AvailableCopies--
//
//		return tx.UpdateBook(ctx, book)
//	})
package loanstore
