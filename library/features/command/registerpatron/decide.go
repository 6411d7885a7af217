package registerpatron

import (
	"fmt"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Decision carries the new patron next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Patron core.Patron
}

// Decide applies the business rules of registering a patron.
//
//	GIVEN: the patron stored under the command's PatronID, if any
//	WHEN:  RegisterPatron is received
//	THEN:  a patron with the category's borrow limit is created (PatronRegistered)
//	ERROR: ErrUnknownCategory if the category is not known
//	ERROR: ErrInvalidCommand if the PatronID is already used for another email
//	IDEMPOTENCY: the patron already exists with the same email
func Decide(existing *core.Patron, command Command, policy core.LoanPolicy) Decision {
	if existing != nil {
		if existing.Email != command.Email {
			return Decision{DecisionResult: core.ErrorDecision(
				fmt.Errorf("%w: patron id %s is already used", core.ErrInvalidCommand, command.PatronID),
			)}
		}

		return Decision{DecisionResult: core.IdempotentDecision(), Patron: *existing}
	}

	category, err := core.ParseCategory(command.Category)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	patron, err := core.BuildPatron(command.PatronID, command.Name, command.Email, category, policy, command.At)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildPatronRegistered(patron, command.At)),
		Patron:         patron,
	}
}
