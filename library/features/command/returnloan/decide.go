package returnloan

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// State is what the CommandHandler locked and loaded before deciding.
type State struct {
	Book core.Book
	Loan core.Loan
}

// Decision carries the decided changes next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Book    core.Book
	Loan    core.Loan
	LateFee core.Money
}

// Decide applies the business rules of returning a loan.
//
//	GIVEN: an Open or Overdue loan and its book
//	WHEN:  ReturnLoan is received
//	THEN:  the loan is Returned, one copy is released and the late fee is computed (LoanReturned)
//	ERROR: ErrAlreadyReturned if the loan is already returned
//	ERROR: ErrOverRelease if the book's ledger has no copy on loan to take back
func Decide(state State, command Command, policy core.LoanPolicy) Decision {
	loan, fee, err := core.Return(state.Loan, command.At, policy)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	book, err := core.ReleaseCopy(state.Book)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}
	book.UpdatedAt = command.At

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildLoanReturned(loan, fee)),
		Book:           book,
		Loan:           loan,
		LateFee:        fee,
	}
}
