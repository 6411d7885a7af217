package loanstore

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when an engine is constructed without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty table name is configured.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrRecordNotFound is returned when a record to lock, read, update or delete does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateRecord is returned when an insert violates a unique constraint.
	ErrDuplicateRecord = errors.New("duplicate record")

	// ErrConcurrencyConflict is returned when the database aborted a transaction because of
	// a serialization failure or a deadlock. Retrying the whole transaction is safe.
	ErrConcurrencyConflict = errors.New("concurrency conflict, transaction was aborted")

	// ErrBuildingQueryFailed is returned when a SQL statement could not be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when a select statement failed.
	ErrQueryingFailed = errors.New("querying failed")

	// ErrScanningDBRowFailed is returned when a result row could not be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrExecFailed is returned when an insert, update or delete statement failed.
	ErrExecFailed = errors.New("executing statement failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count is not available.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrBeginTxFailed is returned when a transaction could not be started.
	ErrBeginTxFailed = errors.New("beginning transaction failed")

	// ErrCommitFailed is returned when a transaction could not be committed.
	ErrCommitFailed = errors.New("committing transaction failed")

	// ErrInvalidPayloadJSON is returned when a journal payload is not valid JSON.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when journal metadata is not valid JSON.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
)
