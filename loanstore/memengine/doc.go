// Package memengine provides an in-memory implementation of the loan store.
//
// All transactions are serialized by a store-wide lock. Each transaction works on a copy of the
// state, which replaces the committed state only when the transaction function returns nil.
// Unique, foreign-key and check constraints of the PostgreSQL schema are enforced on every write,
// so the engine behaves like postgresengine for tests, demos and load generation.
//
// Reads must not be issued from inside a transaction function; use the Tx instead.
package memengine
