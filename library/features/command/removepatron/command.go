package removepatron

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "RemovePatron"
)

// Command represents the intent to remove a patron.
type Command struct {
	CommandID uuid.UUID         `validate:"required"`
	PatronID  uuid.UUID         `validate:"required"`
	At        core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID uuid.UUID, at time.Time) Command {
	return Command{
		CommandID: uuid.New(),
		PatronID:  patronID,
		At:        core.ToOccurredAt(at),
	}
}

// Result identifies the removed patron.
type Result struct {
	PatronID uuid.UUID
}
