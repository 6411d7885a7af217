package loanstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tx is the transactional storage contract used by command handlers.
//
// Lock* methods read a record and hold it until the transaction ends. Callers must acquire locks
// in the order patron, book, loan to keep lock waits deadlock-free.
// All methods return ErrRecordNotFound when the addressed record does not exist.
// Update methods never change CreatedAt, nor the book, patron and borrow time of a loan.
type Tx interface {
	LockBook(ctx context.Context, bookID uuid.UUID) (BookRecord, error)
	LockPatron(ctx context.Context, patronID uuid.UUID) (PatronRecord, error)
	LockLoan(ctx context.Context, loanID uuid.UUID) (LoanRecord, error)

	// ReadLoan reads a loan without locking it. Handlers that only know a loan id use it to
	// learn the book and patron to lock first.
	ReadLoan(ctx context.Context, loanID uuid.UUID) (LoanRecord, error)

	// LockOverdueCandidates locks up to limit Open loans with DueAt before now.
	// Loans locked by other transactions are skipped.
	LockOverdueCandidates(ctx context.Context, now time.Time, limit int) (LoanRecords, error)

	CountActiveLoans(ctx context.Context, patronID uuid.UUID) (int, error)
	CountLoansForBook(ctx context.Context, bookID uuid.UUID) (int, error)
	CountLoansForPatron(ctx context.Context, patronID uuid.UUID) (int, error)

	InsertBook(ctx context.Context, book BookRecord) error
	UpdateBook(ctx context.Context, book BookRecord) error
	DeleteBook(ctx context.Context, bookID uuid.UUID) error

	InsertPatron(ctx context.Context, patron PatronRecord) error
	UpdatePatron(ctx context.Context, patron PatronRecord) error
	DeletePatron(ctx context.Context, patronID uuid.UUID) error

	InsertLoan(ctx context.Context, loan LoanRecord) error
	UpdateLoan(ctx context.Context, loan LoanRecord) error

	AppendEvent(ctx context.Context, event StorableEvent) error
}

// TxFunc is the unit of work executed by WithinTx. Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, tx Tx) error

// Transactor runs a TxFunc inside one transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// Reader serves the non-locking read queries.
type Reader interface {
	ReadBook(ctx context.Context, bookID uuid.UUID) (BookRecord, error)
	ReadPatron(ctx context.Context, patronID uuid.UUID) (PatronRecord, error)
	QueryLoans(ctx context.Context, filter LoanFilter) (LoanRecords, error)
	QueryEvents(ctx context.Context, filter JournalFilter) (StorableEvents, error)
}
