package removepatron

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Decide applies the business rules of removing a patron.
//
//	GIVEN: a patron and the number of loans that reference it
//	WHEN:  RemovePatron is received
//	THEN:  the patron is removed (PatronRemoved)
//	ERROR: ErrPatronHasLoans if any loan references the patron
func Decide(patron core.Patron, loanCount int, command Command) core.DecisionResult {
	if loanCount > 0 {
		return core.ErrorDecision(core.ErrPatronHasLoans)
	}

	return core.SuccessDecision(core.BuildPatronRemoved(patron, command.At))
}
