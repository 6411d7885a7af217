package adapters

import "context"

// DBQuerier runs queries and statements, either directly on a connection pool or inside a transaction.
type DBQuerier interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBAdapter defines the database operations needed by the loan store.
type DBAdapter interface {
	DBQuerier
	BeginTx(ctx context.Context) (DBTx, error)
}

// DBTx is an open transaction. Exactly one of Commit or Rollback ends it;
// Rollback after Commit is a no-op.
type DBTx interface {
	DBQuerier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
