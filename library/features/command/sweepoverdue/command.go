package sweepoverdue

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "SweepOverdueLoans"

	// DefaultBatchSize is the number of loans locked and transitioned per transaction.
	DefaultBatchSize = 100
)

// Command represents the intent to mark all loans past their due date as Overdue.
type Command struct {
	CommandID uuid.UUID         `validate:"required"`
	At        core.OccurredAtTS `validate:"required"`
	BatchSize int               `validate:"min=1,max=10000"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// A batchSize below 1 falls back to DefaultBatchSize.
func BuildCommand(at time.Time, batchSize int) Command {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	return Command{
		CommandID: uuid.New(),
		At:        core.ToOccurredAt(at),
		BatchSize: batchSize,
	}
}

// Result reports how many loans the sweep moved to Overdue.
type Result struct {
	Transitioned int
}
