package core

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry together with its inventory ledger.
//
// The copy counts are only changed by BuildBook, ReserveCopy, ReleaseCopy and Resize,
// which keep 0 <= AvailableCopies <= TotalCopies and TotalCopies >= 1.
type Book struct {
	BookID          uuid.UUID
	ISBN            string
	Title           string
	Author          string
	Publisher       string
	PublicationYear int
	UpdatedAt       time.Time

	totalCopies     int
	availableCopies int
}

// BuildBook creates a new Book with all copies available.
func BuildBook(
	bookID uuid.UUID,
	isbn string,
	title string,
	author string,
	publisher string,
	publicationYear int,
	totalCopies int,
	at time.Time,
) (Book, error) {

	if totalCopies < 1 {
		return Book{}, ErrInvalidCopyCount
	}

	return Book{
		BookID:          bookID,
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Publisher:       publisher,
		PublicationYear: publicationYear,
		UpdatedAt:       ToOccurredAt(at),
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
	}, nil
}

// ReconstituteBook rebuilds a Book from stored copy counts and rejects counts that break the ledger bounds.
func ReconstituteBook(book Book, totalCopies int, availableCopies int) (Book, error) {
	switch {
	case availableCopies < 0:
		return Book{}, ErrNegativeAvailability
	case availableCopies > totalCopies:
		return Book{}, ErrOverRelease
	case totalCopies < 1:
		return Book{}, ErrInvalidCopyCount
	}

	book.totalCopies = totalCopies
	book.availableCopies = availableCopies

	return book, nil
}

// TotalCopies returns the number of copies the library owns.
func (b Book) TotalCopies() int {
	return b.totalCopies
}

// AvailableCopies returns the number of copies on the shelf.
func (b Book) AvailableCopies() int {
	return b.availableCopies
}

// CopiesOnLoan returns the number of copies currently lent out.
func (b Book) CopiesOnLoan() int {
	return b.totalCopies - b.availableCopies
}

// ReserveCopy takes one copy off the shelf for a new loan.
func ReserveCopy(book Book) (Book, error) {
	if book.availableCopies < 1 {
		return book, ErrOutOfStock
	}

	book.availableCopies--

	return book, nil
}

// ReleaseCopy puts one copy back on the shelf after a return.
func ReleaseCopy(book Book) (Book, error) {
	if book.availableCopies >= book.totalCopies {
		return book, ErrOverRelease
	}

	book.availableCopies++

	return book, nil
}

// Resize changes the number of owned copies. Copies on loan stay on loan,
// so total and available shift by the same delta.
func Resize(book Book, newTotal int) (Book, error) {
	if newTotal < 1 {
		return book, ErrInvalidCopyCount
	}

	if newTotal < book.CopiesOnLoan() {
		return book, ErrBelowOutstanding
	}

	delta := newTotal - book.totalCopies
	book.totalCopies = newTotal
	book.availableCopies += delta

	return book, nil
}
