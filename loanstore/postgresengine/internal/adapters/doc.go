// Package adapters provide database adapter implementations for the PostgreSQL loan store.
//
// This package supports three PostgreSQL database libraries: pgx.Pool, sql.DB, and sqlx.DB.
// All adapters offer the same functionality through the DBAdapter interface: plain queries,
// statements, and read-committed transactions (DBTx), so the store can work with any
// supported connection type.
package adapters
