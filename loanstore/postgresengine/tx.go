package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine/internal/adapters"
)

const (
	operationLockBook              = "lock_book"
	operationLockPatron            = "lock_patron"
	operationLockLoan              = "lock_loan"
	operationReadLoan              = "read_loan"
	operationLockOverdueCandidates = "lock_overdue_candidates"
	operationCountLoans            = "count_loans"
	operationInsertBook            = "insert_book"
	operationUpdateBook            = "update_book"
	operationDeleteBook            = "delete_book"
	operationInsertPatron          = "insert_patron"
	operationUpdatePatron          = "update_patron"
	operationDeletePatron          = "delete_patron"
	operationInsertLoan            = "insert_loan"
	operationUpdateLoan            = "update_loan"
	operationAppendEvent           = "append_event"
)

// tx implements loanstore.Tx on top of one open database transaction.
type tx struct {
	store *Store
	q     adapters.DBQuerier
}

func (t *tx) LockBook(ctx context.Context, bookID uuid.UUID) (loanstore.BookRecord, error) {
	sqlQuery, err := t.store.buildSelectBook(bookID, true)
	if err != nil {
		return loanstore.BookRecord{}, err
	}

	return queryOne(ctx, t.store, t.q, sqlQuery, operationLockBook, scanBook)
}

func (t *tx) LockPatron(ctx context.Context, patronID uuid.UUID) (loanstore.PatronRecord, error) {
	sqlQuery, err := t.store.buildSelectPatron(patronID, true)
	if err != nil {
		return loanstore.PatronRecord{}, err
	}

	return queryOne(ctx, t.store, t.q, sqlQuery, operationLockPatron, scanPatron)
}

func (t *tx) LockLoan(ctx context.Context, loanID uuid.UUID) (loanstore.LoanRecord, error) {
	sqlQuery, err := t.store.buildSelectLoan(loanID, true)
	if err != nil {
		return loanstore.LoanRecord{}, err
	}

	return queryOne(ctx, t.store, t.q, sqlQuery, operationLockLoan, scanLoan)
}

func (t *tx) ReadLoan(ctx context.Context, loanID uuid.UUID) (loanstore.LoanRecord, error) {
	sqlQuery, err := t.store.buildSelectLoan(loanID, false)
	if err != nil {
		return loanstore.LoanRecord{}, err
	}

	return queryOne(ctx, t.store, t.q, sqlQuery, operationReadLoan, scanLoan)
}

func (t *tx) LockOverdueCandidates(ctx context.Context, now time.Time, limit int) (loanstore.LoanRecords, error) {
	sqlQuery, err := t.store.buildSelectOverdueCandidates(now, limit)
	if err != nil {
		return nil, err
	}

	return queryAll(ctx, t.store, t.q, sqlQuery, operationLockOverdueCandidates, scanLoan)
}

func (t *tx) CountActiveLoans(ctx context.Context, patronID uuid.UUID) (int, error) {
	return t.countLoans(ctx,
		goqu.C(colPatronID).Eq(patronID.String()),
		goqu.C(colStatus).In(loanstore.ActiveLoanStatuses()),
	)
}

func (t *tx) CountLoansForBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	return t.countLoans(ctx, goqu.C(colBookID).Eq(bookID.String()))
}

func (t *tx) CountLoansForPatron(ctx context.Context, patronID uuid.UUID) (int, error) {
	return t.countLoans(ctx, goqu.C(colPatronID).Eq(patronID.String()))
}

func (t *tx) countLoans(ctx context.Context, where ...goqu.Expression) (int, error) {
	sqlQuery, err := t.store.buildCountLoans(where...)
	if err != nil {
		return 0, err
	}

	return queryOne(ctx, t.store, t.q, sqlQuery, operationCountLoans, scanCount)
}

func (t *tx) InsertBook(ctx context.Context, book loanstore.BookRecord) error {
	sqlQuery, err := t.store.buildInsertBook(book)
	if err != nil {
		return err
	}

	_, err = t.store.exec(ctx, t.q, sqlQuery, operationInsertBook)

	return err
}

func (t *tx) UpdateBook(ctx context.Context, book loanstore.BookRecord) error {
	sqlQuery, err := t.store.buildUpdateBook(book)
	if err != nil {
		return err
	}

	return t.store.execOne(ctx, t.q, sqlQuery, operationUpdateBook)
}

func (t *tx) DeleteBook(ctx context.Context, bookID uuid.UUID) error {
	sqlQuery, err := t.store.buildDelete(t.store.tables.books, colBookID, bookID)
	if err != nil {
		return err
	}

	return t.store.execOne(ctx, t.q, sqlQuery, operationDeleteBook)
}

func (t *tx) InsertPatron(ctx context.Context, patron loanstore.PatronRecord) error {
	sqlQuery, err := t.store.buildInsertPatron(patron)
	if err != nil {
		return err
	}

	_, err = t.store.exec(ctx, t.q, sqlQuery, operationInsertPatron)

	return err
}

func (t *tx) UpdatePatron(ctx context.Context, patron loanstore.PatronRecord) error {
	sqlQuery, err := t.store.buildUpdatePatron(patron)
	if err != nil {
		return err
	}

	return t.store.execOne(ctx, t.q, sqlQuery, operationUpdatePatron)
}

func (t *tx) DeletePatron(ctx context.Context, patronID uuid.UUID) error {
	sqlQuery, err := t.store.buildDelete(t.store.tables.patrons, colPatronID, patronID)
	if err != nil {
		return err
	}

	return t.store.execOne(ctx, t.q, sqlQuery, operationDeletePatron)
}

func (t *tx) InsertLoan(ctx context.Context, loan loanstore.LoanRecord) error {
	sqlQuery, err := t.store.buildInsertLoan(loan)
	if err != nil {
		return err
	}

	_, err = t.store.exec(ctx, t.q, sqlQuery, operationInsertLoan)

	return err
}

func (t *tx) UpdateLoan(ctx context.Context, loan loanstore.LoanRecord) error {
	sqlQuery, err := t.store.buildUpdateLoan(loan)
	if err != nil {
		return err
	}

	return t.store.execOne(ctx, t.q, sqlQuery, operationUpdateLoan)
}

func (t *tx) AppendEvent(ctx context.Context, event loanstore.StorableEvent) error {
	sqlQuery, err := t.store.buildInsertEvent(event)
	if err != nil {
		return err
	}

	_, err = t.store.exec(ctx, t.q, sqlQuery, operationAppendEvent)

	return err
}
