package changepatroncategory

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "ChangePatronCategory"
)

// Command represents the intent to move a patron into another category.
type Command struct {
	CommandID       uuid.UUID `validate:"required"`
	PatronID        uuid.UUID `validate:"required"`
	Category        string    `validate:"required"`
	ReevaluateLimit bool
	At              core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID uuid.UUID, category string, reevaluateLimit bool, at time.Time) Command {
	return Command{
		CommandID:       uuid.New(),
		PatronID:        patronID,
		Category:        category,
		ReevaluateLimit: reevaluateLimit,
		At:              core.ToOccurredAt(at),
	}
}

// Result describes the patron after the command.
type Result struct {
	PatronID    uuid.UUID
	Category    string
	BorrowLimit int
}
