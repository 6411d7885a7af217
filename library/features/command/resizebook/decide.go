package resizebook

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Decision carries the resized book next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Book core.Book
}

// Decide applies the business rules of resizing a book's copies.
//
//	GIVEN: a book
//	WHEN:  ResizeBookCopies is received
//	THEN:  total and available copies shift by the same delta (BookCopiesResized)
//	ERROR: ErrInvalidCopyCount if the new total is below one
//	ERROR: ErrBelowOutstanding if the new total is below the copies on loan
//	IDEMPOTENCY: the book already has the requested total
func Decide(book core.Book, command Command) Decision {
	if book.TotalCopies() == command.TotalCopies {
		return Decision{DecisionResult: core.IdempotentDecision(), Book: book}
	}

	previousTotal := book.TotalCopies()

	resized, err := core.Resize(book, command.TotalCopies)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}
	resized.UpdatedAt = command.At

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildBookCopiesResized(previousTotal, resized, command.At)),
		Book:           resized,
	}
}
