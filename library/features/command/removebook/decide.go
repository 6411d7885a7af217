package removebook

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Decide applies the business rules of removing a book.
//
//	GIVEN: a book and the number of loans that reference it
//	WHEN:  RemoveBookFromCatalog is received
//	THEN:  the book is removed (BookRemovedFromCatalog)
//	ERROR: ErrBookHasLoans if any loan references the book
func Decide(book core.Book, loanCount int, command Command) core.DecisionResult {
	if loanCount > 0 {
		return core.ErrorDecision(core.ErrBookHasLoans)
	}

	return core.SuccessDecision(core.BuildBookRemovedFromCatalog(book, command.At))
}
