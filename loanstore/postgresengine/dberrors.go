package postgresengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeUniqueViolation      = "23505"
)

// sqlStateOf extracts the SQLSTATE from a pgx or lib/pq error, or returns "".
func sqlStateOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// mapDBError joins the matching loanstore sentinel onto driver errors that callers must tell apart.
func mapDBError(err error) error {
	switch sqlStateOf(err) {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected:
		return errors.Join(loanstore.ErrConcurrencyConflict, err)
	case pgCodeUniqueViolation:
		return errors.Join(loanstore.ErrDuplicateRecord, err)
	default:
		return err
	}
}

// txStatusFor classifies the error that ended a transaction for metrics and spans.
func txStatusFor(err error) string {
	switch {
	case errors.Is(err, loanstore.ErrConcurrencyConflict):
		return statusConcurrencyConflict
	case isInfrastructureError(err):
		return statusError
	default:
		return statusRolledBack
	}
}

func isInfrastructureError(err error) bool {
	for _, sentinel := range []error{
		loanstore.ErrBuildingQueryFailed,
		loanstore.ErrQueryingFailed,
		loanstore.ErrScanningDBRowFailed,
		loanstore.ErrExecFailed,
		loanstore.ErrGettingRowsAffectedFailed,
		loanstore.ErrBeginTxFailed,
		loanstore.ErrCommitFailed,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
