package extendloan

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Decision carries the extended loan next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Loan core.Loan
}

// Decide applies the business rules of extending a loan.
//
//	GIVEN: a loan
//	WHEN:  ExtendLoan is received
//	THEN:  the due date moves by the policy's extension period (LoanExtended)
//	ERROR: ErrCannotExtendOverdue if the loan is Overdue or already past its due date
//	ERROR: ErrCannotExtendReturned if the loan is returned
//	ERROR: ErrExtensionLimitReached if the policy caps extensions and the cap is reached
func Decide(loan core.Loan, command Command, policy core.LoanPolicy) Decision {
	previousDueAt := loan.DueAt()

	extended, err := core.Extend(loan, command.At, policy)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildLoanExtended(previousDueAt, extended, command.At)),
		Loan:           extended,
	}
}
