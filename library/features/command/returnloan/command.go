package returnloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "ReturnLoan"
)

// Command represents the intent to return the book of a loan.
type Command struct {
	CommandID uuid.UUID         `validate:"required"`
	LoanID    uuid.UUID         `validate:"required"`
	At        core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, at time.Time) Command {
	return Command{
		CommandID: uuid.New(),
		LoanID:    loanID,
		At:        core.ToOccurredAt(at),
	}
}

// Result is returned by a successful return.
type Result struct {
	LoanID     uuid.UUID
	ReturnedAt time.Time
	LateFee    core.Money
}
