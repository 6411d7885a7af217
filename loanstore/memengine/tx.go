package memengine

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

var (
	errForeignKeyViolation = errors.New("foreign key violation")
	errCheckViolation      = errors.New("check constraint violation")
)

// memTx implements loanstore.Tx on a private copy of the state.
// Locks are implicit: the whole store is locked while the transaction runs.
type memTx struct {
	state state
}

func (t *memTx) LockBook(_ context.Context, bookID uuid.UUID) (loanstore.BookRecord, error) {
	book, ok := t.state.books[bookID]
	if !ok {
		return loanstore.BookRecord{}, loanstore.ErrRecordNotFound
	}

	return book, nil
}

func (t *memTx) LockPatron(_ context.Context, patronID uuid.UUID) (loanstore.PatronRecord, error) {
	patron, ok := t.state.patrons[patronID]
	if !ok {
		return loanstore.PatronRecord{}, loanstore.ErrRecordNotFound
	}

	return patron, nil
}

func (t *memTx) LockLoan(_ context.Context, loanID uuid.UUID) (loanstore.LoanRecord, error) {
	loan, ok := t.state.loans[loanID]
	if !ok {
		return loanstore.LoanRecord{}, loanstore.ErrRecordNotFound
	}

	return cloneLoan(loan), nil
}

func (t *memTx) ReadLoan(ctx context.Context, loanID uuid.UUID) (loanstore.LoanRecord, error) {
	return t.LockLoan(ctx, loanID)
}

func (t *memTx) LockOverdueCandidates(_ context.Context, now time.Time, limit int) (loanstore.LoanRecords, error) {
	candidates := make(loanstore.LoanRecords, 0)

	for _, loan := range t.state.loans {
		if loan.Status == loanstore.LoanStatusOpen && loan.DueAt.Before(now) {
			candidates = append(candidates, cloneLoan(loan))
		}
	}

	slices.SortFunc(candidates, func(a, b loanstore.LoanRecord) int {
		if c := a.DueAt.Compare(b.DueAt); c != 0 {
			return c
		}

		return compareIDs(a.LoanID, b.LoanID)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func (t *memTx) CountActiveLoans(_ context.Context, patronID uuid.UUID) (int, error) {
	return t.countLoans(func(loan loanstore.LoanRecord) bool {
		return loan.PatronID == patronID && slices.Contains(loanstore.ActiveLoanStatuses(), loan.Status)
	}), nil
}

func (t *memTx) CountLoansForBook(_ context.Context, bookID uuid.UUID) (int, error) {
	return t.countLoans(func(loan loanstore.LoanRecord) bool { return loan.BookID == bookID }), nil
}

func (t *memTx) CountLoansForPatron(_ context.Context, patronID uuid.UUID) (int, error) {
	return t.countLoans(func(loan loanstore.LoanRecord) bool { return loan.PatronID == patronID }), nil
}

func (t *memTx) countLoans(match func(loan loanstore.LoanRecord) bool) int {
	count := 0

	for _, loan := range t.state.loans {
		if match(loan) {
			count++
		}
	}

	return count
}

func (t *memTx) InsertBook(_ context.Context, book loanstore.BookRecord) error {
	if _, exists := t.state.books[book.BookID]; exists {
		return loanstore.ErrDuplicateRecord
	}

	if err := t.checkBook(book); err != nil {
		return err
	}

	t.state.books[book.BookID] = book

	return nil
}

func (t *memTx) UpdateBook(_ context.Context, book loanstore.BookRecord) error {
	existing, ok := t.state.books[book.BookID]
	if !ok {
		return loanstore.ErrRecordNotFound
	}

	if err := t.checkBook(book); err != nil {
		return err
	}

	book.CreatedAt = existing.CreatedAt
	t.state.books[book.BookID] = book

	return nil
}

func (t *memTx) checkBook(book loanstore.BookRecord) error {
	if book.TotalCopies < 1 || book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
		return errors.Join(loanstore.ErrExecFailed, errCheckViolation)
	}

	for id, other := range t.state.books {
		if id != book.BookID && other.ISBN == book.ISBN {
			return loanstore.ErrDuplicateRecord
		}
	}

	return nil
}

func (t *memTx) DeleteBook(_ context.Context, bookID uuid.UUID) error {
	if _, ok := t.state.books[bookID]; !ok {
		return loanstore.ErrRecordNotFound
	}

	if t.countLoans(func(loan loanstore.LoanRecord) bool { return loan.BookID == bookID }) > 0 {
		return errors.Join(loanstore.ErrExecFailed, errForeignKeyViolation)
	}

	delete(t.state.books, bookID)

	return nil
}

func (t *memTx) InsertPatron(_ context.Context, patron loanstore.PatronRecord) error {
	if _, exists := t.state.patrons[patron.PatronID]; exists {
		return loanstore.ErrDuplicateRecord
	}

	if err := t.checkPatron(patron); err != nil {
		return err
	}

	t.state.patrons[patron.PatronID] = patron

	return nil
}

func (t *memTx) UpdatePatron(_ context.Context, patron loanstore.PatronRecord) error {
	existing, ok := t.state.patrons[patron.PatronID]
	if !ok {
		return loanstore.ErrRecordNotFound
	}

	if err := t.checkPatron(patron); err != nil {
		return err
	}

	patron.CreatedAt = existing.CreatedAt
	t.state.patrons[patron.PatronID] = patron

	return nil
}

func (t *memTx) checkPatron(patron loanstore.PatronRecord) error {
	if patron.BorrowLimit < 0 {
		return errors.Join(loanstore.ErrExecFailed, errCheckViolation)
	}

	for id, other := range t.state.patrons {
		if id != patron.PatronID && other.Email == patron.Email {
			return loanstore.ErrDuplicateRecord
		}
	}

	return nil
}

func (t *memTx) DeletePatron(_ context.Context, patronID uuid.UUID) error {
	if _, ok := t.state.patrons[patronID]; !ok {
		return loanstore.ErrRecordNotFound
	}

	if t.countLoans(func(loan loanstore.LoanRecord) bool { return loan.PatronID == patronID }) > 0 {
		return errors.Join(loanstore.ErrExecFailed, errForeignKeyViolation)
	}

	delete(t.state.patrons, patronID)

	return nil
}

func (t *memTx) InsertLoan(_ context.Context, loan loanstore.LoanRecord) error {
	if _, exists := t.state.loans[loan.LoanID]; exists {
		return loanstore.ErrDuplicateRecord
	}

	if _, ok := t.state.books[loan.BookID]; !ok {
		return errors.Join(loanstore.ErrExecFailed, errForeignKeyViolation)
	}

	if _, ok := t.state.patrons[loan.PatronID]; !ok {
		return errors.Join(loanstore.ErrExecFailed, errForeignKeyViolation)
	}

	if err := checkLoan(loan); err != nil {
		return err
	}

	t.state.loans[loan.LoanID] = cloneLoan(loan)

	return nil
}

func (t *memTx) UpdateLoan(_ context.Context, loan loanstore.LoanRecord) error {
	existing, ok := t.state.loans[loan.LoanID]
	if !ok {
		return loanstore.ErrRecordNotFound
	}

	// book, patron and borrowed_at are immutable, as in the UPDATE statement of postgresengine
	loan.BookID = existing.BookID
	loan.PatronID = existing.PatronID
	loan.BorrowedAt = existing.BorrowedAt

	if err := checkLoan(loan); err != nil {
		return err
	}

	t.state.loans[loan.LoanID] = cloneLoan(loan)

	return nil
}

func checkLoan(loan loanstore.LoanRecord) error {
	if !loan.DueAt.After(loan.BorrowedAt) || loan.Extensions < 0 {
		return errors.Join(loanstore.ErrExecFailed, errCheckViolation)
	}

	switch loan.Status {
	case loanstore.LoanStatusOpen, loanstore.LoanStatusOverdue:
		if loan.ReturnedAt != nil {
			return errors.Join(loanstore.ErrExecFailed, errCheckViolation)
		}
	case loanstore.LoanStatusReturned:
		if loan.ReturnedAt == nil {
			return errors.Join(loanstore.ErrExecFailed, errCheckViolation)
		}
	default:
		return errors.Join(loanstore.ErrExecFailed, errCheckViolation)
	}

	return nil
}

func (t *memTx) AppendEvent(_ context.Context, event loanstore.StorableEvent) error {
	event.SequenceNumber = t.state.nextSeq
	t.state.nextSeq++
	t.state.events = append(t.state.events, event)

	return nil
}
