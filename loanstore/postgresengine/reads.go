package postgresengine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	operationReadBook    = "read_book"
	operationReadPatron  = "read_patron"
	operationQueryLoans  = "query_loans"
	operationQueryEvents = "query_events"
)

// ReadBook reads a book without locking it.
// Returns loanstore.ErrRecordNotFound if the book does not exist.
func (s *Store) ReadBook(ctx context.Context, bookID uuid.UUID) (loanstore.BookRecord, error) {
	sqlQuery, err := s.buildSelectBook(bookID, false)
	if err != nil {
		return loanstore.BookRecord{}, err
	}

	return observedRead(ctx, s, operationReadBook, func(ctx context.Context) (loanstore.BookRecord, error) {
		return queryOne(ctx, s, s.db, sqlQuery, operationReadBook, scanBook)
	})
}

// ReadPatron reads a patron without locking it.
// Returns loanstore.ErrRecordNotFound if the patron does not exist.
func (s *Store) ReadPatron(ctx context.Context, patronID uuid.UUID) (loanstore.PatronRecord, error) {
	sqlQuery, err := s.buildSelectPatron(patronID, false)
	if err != nil {
		return loanstore.PatronRecord{}, err
	}

	return observedRead(ctx, s, operationReadPatron, func(ctx context.Context) (loanstore.PatronRecord, error) {
		return queryOne(ctx, s, s.db, sqlQuery, operationReadPatron, scanPatron)
	})
}

// QueryLoans returns the loans matching the filter, newest first.
func (s *Store) QueryLoans(ctx context.Context, filter loanstore.LoanFilter) (loanstore.LoanRecords, error) {
	sqlQuery, err := s.buildSelectLoans(filter)
	if err != nil {
		return nil, err
	}

	return observedRead(ctx, s, operationQueryLoans, func(ctx context.Context) (loanstore.LoanRecords, error) {
		return queryAll(ctx, s, s.db, sqlQuery, operationQueryLoans, scanLoan)
	})
}

// QueryEvents returns the journal entries matching the filter in append order.
func (s *Store) QueryEvents(ctx context.Context, filter loanstore.JournalFilter) (loanstore.StorableEvents, error) {
	sqlQuery, err := s.buildSelectEvents(filter)
	if err != nil {
		return nil, err
	}

	return observedRead(ctx, s, operationQueryEvents, func(ctx context.Context) (loanstore.StorableEvents, error) {
		return queryAll(ctx, s, s.db, sqlQuery, operationQueryEvents, scanEvent)
	})
}

func observedRead[T any](ctx context.Context, s *Store, operation string, read func(ctx context.Context) (T, error)) (T, error) {
	tracing, ctx := s.startReadTracing(ctx, operation)
	start := time.Now()

	result, err := read(ctx)
	duration := time.Since(start)

	if err != nil {
		tracing.finish(readStatusFor(err), duration)
		return result, err
	}

	tracing.finish(statusSuccess, duration)

	return result, nil
}
