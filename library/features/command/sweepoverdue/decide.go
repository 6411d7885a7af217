package sweepoverdue

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Decision carries the possibly transitioned loan next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Loan core.Loan
}

// Decide applies the overdue transition to one loan.
//
//	GIVEN: a loan
//	WHEN:  the sweep runs at command.At
//	THEN:  an Open loan past its due date becomes Overdue (LoanMarkedOverdue)
//	IDEMPOTENCY: loans that are not Open or not yet due are left unchanged
func Decide(loan core.Loan, command Command) Decision {
	updated, changed, err := core.MarkOverdue(loan, command.At)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	if !changed {
		return Decision{DecisionResult: core.IdempotentDecision(), Loan: loan}
	}

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildLoanMarkedOverdue(updated, command.At)),
		Loan:           updated,
	}
}
