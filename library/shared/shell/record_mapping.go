package shell

import (
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// BookFromRecord reconstitutes a Book and its ledger from a stored record.
func BookFromRecord(record loanstore.BookRecord) (core.Book, error) {
	return core.ReconstituteBook(
		core.Book{
			BookID:          record.BookID,
			ISBN:            record.ISBN,
			Title:           record.Title,
			Author:          record.Author,
			Publisher:       record.Publisher,
			PublicationYear: record.PublicationYear,
			UpdatedAt:       record.UpdatedAt,
		},
		record.TotalCopies,
		record.AvailableCopies,
	)
}

// BookRecordFrom flattens a Book into its stored shape.
func BookRecordFrom(book core.Book, createdAt time.Time) loanstore.BookRecord {
	return loanstore.BookRecord{
		BookID:          book.BookID,
		ISBN:            book.ISBN,
		Title:           book.Title,
		Author:          book.Author,
		Publisher:       book.Publisher,
		PublicationYear: book.PublicationYear,
		TotalCopies:     book.TotalCopies(),
		AvailableCopies: book.AvailableCopies(),
		CreatedAt:       createdAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

// BookRecordForUpdate flattens a Book for Tx.UpdateBook, which keeps the stored CreatedAt.
func BookRecordForUpdate(book core.Book) loanstore.BookRecord {
	return BookRecordFrom(book, time.Time{})
}

// PatronFromRecord rebuilds a Patron from a stored record.
// An unknown stored category is an invariant violation, not a rule violation.
func PatronFromRecord(record loanstore.PatronRecord) (core.Patron, error) {
	category, err := core.ParseCategory(record.Category)
	if err != nil {
		return core.Patron{}, fmt.Errorf("%w: stored category %q of patron %s", core.ErrInvariantViolation, record.Category, record.PatronID)
	}

	return core.Patron{
		PatronID:    record.PatronID,
		Name:        record.Name,
		Email:       record.Email,
		Category:    category,
		BorrowLimit: record.BorrowLimit,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// PatronRecordFrom flattens a Patron into its stored shape.
func PatronRecordFrom(patron core.Patron, createdAt time.Time) loanstore.PatronRecord {
	return loanstore.PatronRecord{
		PatronID:    patron.PatronID,
		Name:        patron.Name,
		Email:       patron.Email,
		Category:    patron.Category.String(),
		BorrowLimit: patron.BorrowLimit,
		CreatedAt:   createdAt,
		UpdatedAt:   patron.UpdatedAt,
	}
}

// PatronRecordForUpdate flattens a Patron for Tx.UpdatePatron, which keeps the stored CreatedAt.
func PatronRecordForUpdate(patron core.Patron) loanstore.PatronRecord {
	return PatronRecordFrom(patron, time.Time{})
}

// LoanFromRecord reconstitutes a Loan from a stored record and checks its state invariants.
func LoanFromRecord(record loanstore.LoanRecord) (core.Loan, error) {
	status, err := core.ParseLoanStatus(record.Status)
	if err != nil {
		return core.Loan{}, err
	}

	return core.ReconstituteLoan(
		record.LoanID,
		record.BookID,
		record.PatronID,
		record.BorrowedAt,
		record.DueAt,
		record.ReturnedAt,
		status,
		record.Extensions,
	)
}

// LoansFromRecords reconstitutes multiple loans, failing on the first broken record.
func LoansFromRecords(records loanstore.LoanRecords) ([]core.Loan, error) {
	loans := make([]core.Loan, 0, len(records))

	for _, record := range records {
		loan, err := LoanFromRecord(record)
		if err != nil {
			return nil, err
		}

		loans = append(loans, loan)
	}

	return loans, nil
}

// LoanRecordFrom flattens a Loan into its stored shape.
func LoanRecordFrom(loan core.Loan) loanstore.LoanRecord {
	record := loanstore.LoanRecord{
		LoanID:     loan.LoanID,
		BookID:     loan.BookID,
		PatronID:   loan.PatronID,
		BorrowedAt: loan.BorrowedAt(),
		DueAt:      loan.DueAt(),
		Status:     loan.Status().String(),
		Extensions: loan.Extensions(),
	}

	if returnedAt, ok := loan.ReturnedAt(); ok {
		record.ReturnedAt = &returnedAt
	}

	return record
}

// NotFoundAs replaces a store's ErrRecordNotFound with the domain's not-found error.
// Every other error is returned unchanged.
func NotFoundAs(err error, notFound error) error {
	if errors.Is(err, loanstore.ErrRecordNotFound) {
		return notFound
	}

	return err
}

// DuplicateAs replaces a store's ErrDuplicateRecord with the domain's duplicate error.
// Every other error is returned unchanged.
func DuplicateAs(err error, duplicate error) error {
	if errors.Is(err, loanstore.ErrDuplicateRecord) {
		return duplicate
	}

	return err
}
