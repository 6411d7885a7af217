package borrowbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// State is what the CommandHandler locked and loaded before deciding.
type State struct {
	Patron          core.Patron
	ActiveLoanCount int
	Book            core.Book

	// ExistingLoan is the loan already stored under the command's LoanID, if any.
	ExistingLoan *core.Loan
}

// Decision carries the decided changes next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Book core.Book
	Loan core.Loan
}

// Decide applies the business rules of borrowing a book.
//
//	GIVEN: a patron and a book
//	WHEN:  BorrowBook is received
//	THEN:  one copy is reserved and a loan due after the policy's loan period is opened (BookBorrowed)
//	ERROR: ErrBorrowLimitExceeded if the patron's active loans reached the borrow limit, checked first
//	ERROR: ErrOutOfStock if no copy is available
//	ERROR: ErrInvalidCommand if the LoanID is already used for another book or patron
//	IDEMPOTENCY: the loan with this LoanID already exists for the same book and patron
func Decide(state State, command Command, policy core.LoanPolicy) Decision {
	if existing := state.ExistingLoan; existing != nil {
		if existing.BookID != command.BookID || existing.PatronID != command.PatronID {
			return Decision{DecisionResult: core.ErrorDecision(
				fmt.Errorf("%w: loan id %s is already used", core.ErrInvalidCommand, command.LoanID),
			)}
		}

		return Decision{DecisionResult: core.IdempotentDecision(), Book: state.Book, Loan: *existing}
	}

	if !core.CanBorrow(state.Patron, state.ActiveLoanCount) {
		return Decision{DecisionResult: core.ErrorDecision(core.ErrBorrowLimitExceeded)}
	}

	book, err := core.ReserveCopy(state.Book)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	book.UpdatedAt = command.At
	loan := core.OpenLoan(command.LoanID, command.BookID, command.PatronID, command.At, policy)

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildBookBorrowed(loan)),
		Book:           book,
		Loan:           loan,
	}
}
