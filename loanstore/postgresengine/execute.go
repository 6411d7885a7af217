package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine/internal/adapters"
)

type rowScanner[T any] func(rows adapters.DBRows) (T, error)

// query executes sqlQuery and returns the open rows; callers hand them to collectRows.
func (s *Store) query(ctx context.Context, q adapters.DBQuerier, sqlQuery sqlQueryString, operation string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := q.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		s.recordQueryMetrics(ctx, operation, statusError, duration)
		s.recordErrorMetrics(ctx, operation, errorTypeQuery)

		return nil, errors.Join(loanstore.ErrQueryingFailed, mapDBError(queryErr))
	}

	s.recordQueryMetrics(ctx, operation, statusSuccess, duration)

	return rows, nil
}

// collectRows scans all rows and closes them. Errors raised while streaming (lock timeouts,
// deadlocks) surface here for drivers that report them lazily.
func collectRows[T any](ctx context.Context, s *Store, rows adapters.DBRows, operation string, scan rowScanner[T]) ([]T, error) {
	defer s.closeRows(ctx, rows)

	result := make([]T, 0)

	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr, logAttrOperation, operation)
			s.recordErrorMetrics(ctx, operation, errorTypeScan)

			return nil, errors.Join(loanstore.ErrScanningDBRowFailed, scanErr)
		}

		result = append(result, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrOperation, operation)
		s.recordErrorMetrics(ctx, operation, errorTypeQuery)

		return nil, errors.Join(loanstore.ErrQueryingFailed, mapDBError(rowsErr))
	}

	return result, nil
}

func queryAll[T any](ctx context.Context, s *Store, q adapters.DBQuerier, sqlQuery sqlQueryString, operation string, scan rowScanner[T]) ([]T, error) {
	rows, err := s.query(ctx, q, sqlQuery, operation)
	if err != nil {
		return nil, err
	}

	return collectRows(ctx, s, rows, operation, scan)
}

func queryOne[T any](ctx context.Context, s *Store, q adapters.DBQuerier, sqlQuery sqlQueryString, operation string, scan rowScanner[T]) (T, error) {
	var empty T

	result, err := queryAll(ctx, s, q, sqlQuery, operation, scan)
	if err != nil {
		return empty, err
	}

	if len(result) == 0 {
		return empty, loanstore.ErrRecordNotFound
	}

	return result[0], nil
}

// exec executes a statement and returns the number of affected rows.
func (s *Store) exec(ctx context.Context, q adapters.DBQuerier, sqlQuery sqlQueryString, operation string) (int64, error) {
	start := time.Now()
	result, execErr := q.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if execErr != nil {
		mapped := mapDBError(execErr)

		if errors.Is(mapped, loanstore.ErrDuplicateRecord) {
			s.recordQueryMetrics(ctx, operation, statusDuplicate, duration)
			return 0, mapped
		}

		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		s.recordQueryMetrics(ctx, operation, statusError, duration)
		s.recordErrorMetrics(ctx, operation, errorTypeExec)

		return 0, errors.Join(loanstore.ErrExecFailed, mapped)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		s.recordQueryMetrics(ctx, operation, statusError, duration)

		return 0, errors.Join(loanstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	s.recordQueryMetrics(ctx, operation, statusSuccess, duration)

	return rowsAffected, nil
}

// execOne executes a statement that must affect exactly one existing row.
func (s *Store) execOne(ctx context.Context, q adapters.DBQuerier, sqlQuery sqlQueryString, operation string) error {
	rowsAffected, err := s.exec(ctx, q, sqlQuery, operation)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return loanstore.ErrRecordNotFound
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

func scanBook(rows adapters.DBRows) (loanstore.BookRecord, error) {
	var book loanstore.BookRecord
	var bookID string

	if err := rows.Scan(
		&bookID, &book.ISBN, &book.Title, &book.Author, &book.Publisher, &book.PublicationYear,
		&book.TotalCopies, &book.AvailableCopies, &book.CreatedAt, &book.UpdatedAt,
	); err != nil {
		return loanstore.BookRecord{}, err
	}

	parsed, err := uuid.Parse(bookID)
	if err != nil {
		return loanstore.BookRecord{}, err
	}

	book.BookID = parsed

	return book, nil
}

func scanPatron(rows adapters.DBRows) (loanstore.PatronRecord, error) {
	var patron loanstore.PatronRecord
	var patronID string

	if err := rows.Scan(
		&patronID, &patron.Name, &patron.Email, &patron.Category, &patron.BorrowLimit,
		&patron.CreatedAt, &patron.UpdatedAt,
	); err != nil {
		return loanstore.PatronRecord{}, err
	}

	parsed, err := uuid.Parse(patronID)
	if err != nil {
		return loanstore.PatronRecord{}, err
	}

	patron.PatronID = parsed

	return patron, nil
}

func scanLoan(rows adapters.DBRows) (loanstore.LoanRecord, error) {
	var loan loanstore.LoanRecord
	var loanID, bookID, patronID string

	if err := rows.Scan(
		&loanID, &bookID, &patronID, &loan.BorrowedAt, &loan.DueAt, &loan.ReturnedAt,
		&loan.Status, &loan.Extensions,
	); err != nil {
		return loanstore.LoanRecord{}, err
	}

	ids := make([]uuid.UUID, 0, 3)
	for _, raw := range []string{loanID, bookID, patronID} {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return loanstore.LoanRecord{}, err
		}

		ids = append(ids, parsed)
	}

	loan.LoanID, loan.BookID, loan.PatronID = ids[0], ids[1], ids[2]

	return loan, nil
}

func scanEvent(rows adapters.DBRows) (loanstore.StorableEvent, error) {
	var eventType string
	var occurredAt time.Time
	var payload, metadata []byte
	var sequenceNumber int64

	if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); err != nil {
		return loanstore.StorableEvent{}, err
	}

	event, err := loanstore.BuildStorableEvent(eventType, occurredAt, payload, metadata)
	if err != nil {
		return loanstore.StorableEvent{}, err
	}

	event.SequenceNumber = uint64(sequenceNumber) //nolint:gosec

	return event, nil
}

func scanCount(rows adapters.DBRows) (int, error) {
	var count int64

	if err := rows.Scan(&count); err != nil {
		return 0, err
	}

	return int(count), nil
}
