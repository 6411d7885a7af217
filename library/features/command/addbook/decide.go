package addbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Decision carries the new book next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Book core.Book
}

// Decide applies the business rules of adding a book.
//
//	GIVEN: the book stored under the command's BookID, if any
//	WHEN:  AddBookToCatalog is received
//	THEN:  a book with all copies available is created (BookAddedToCatalog)
//	ERROR: ErrInvalidCopyCount if fewer than one copy is added
//	ERROR: ErrInvalidCommand if the BookID is already used for another ISBN
//	IDEMPOTENCY: the book already exists with the same ISBN
func Decide(existing *core.Book, command Command) Decision {
	if existing != nil {
		if existing.ISBN != command.ISBN {
			return Decision{DecisionResult: core.ErrorDecision(
				fmt.Errorf("%w: book id %s is already used", core.ErrInvalidCommand, command.BookID),
			)}
		}

		return Decision{DecisionResult: core.IdempotentDecision(), Book: *existing}
	}

	book, err := core.BuildBook(
		command.BookID,
		command.ISBN,
		command.Title,
		command.Author,
		command.Publisher,
		command.PublicationYear,
		command.TotalCopies,
		command.At,
	)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildBookAddedToCatalog(book, command.At)),
		Book:           book,
	}
}
