package changepatroncategory

import (
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// State is what the decision needs to know about the patron.
type State struct {
	Patron          core.Patron
	ActiveLoanCount int
}

// Decision carries the updated patron next to the DecisionResult.
type Decision struct {
	core.DecisionResult
	Patron core.Patron
}

// Decide applies the business rules of changing a patron's category.
//
//	GIVEN: a patron and its number of active loans
//	WHEN:  ChangePatronCategory is received
//	THEN:  the category changes, the limit only if re-evaluation is requested (PatronCategoryChanged)
//	ERROR: ErrUnknownCategory if the category is not known
//	ERROR: ErrPolicyViolation if the patron holds more active loans than the new category permits
//	IDEMPOTENCY: neither category nor limit would change
func Decide(state State, command Command, policy core.LoanPolicy) Decision {
	category, err := core.ParseCategory(command.Category)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	previous := state.Patron.Category

	patron, changed, err := core.ChangeCategory(
		state.Patron,
		category,
		state.ActiveLoanCount,
		command.ReevaluateLimit,
		policy,
		command.At,
	)
	if err != nil {
		return Decision{DecisionResult: core.ErrorDecision(err)}
	}

	if !changed {
		return Decision{DecisionResult: core.IdempotentDecision(), Patron: patron}
	}

	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildPatronCategoryChanged(previous, patron, command.At)),
		Patron:         patron,
	}
}
