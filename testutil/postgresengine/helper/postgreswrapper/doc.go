// Package postgreswrapper creates postgres loan stores for integration tests.
//
// The database adapter is selected with the ADAPTER_TYPE environment variable
// (pgx.pool, sql.db or sqlx.db, default pgx.pool) and the database with LOANS_DSN.
// Tests are skipped when the database is not reachable.
package postgreswrapper
