package bookavailability

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Availability represents the copy ledger of a book.
type Availability struct {
	BookID          core.BookIDString
	ISBN            string
	Title           string
	TotalCopies     int
	AvailableCopies int
	CopiesOnLoan    int
	IsAvailable     bool
}

// Project builds the Availability of a book.
func Project(book core.Book) Availability {
	return Availability{
		BookID:          book.BookID.String(),
		ISBN:            book.ISBN,
		Title:           book.Title,
		TotalCopies:     book.TotalCopies(),
		AvailableCopies: book.AvailableCopies(),
		CopiesOnLoan:    book.CopiesOnLoan(),
		IsAvailable:     book.AvailableCopies() > 0,
	}
}
