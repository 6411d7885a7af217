package resizebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "ResizeBookCopies"
)

// Command represents the intent to change the number of copies the library owns.
type Command struct {
	CommandID   uuid.UUID `validate:"required"`
	BookID      uuid.UUID `validate:"required"`
	TotalCopies int
	At          core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, totalCopies int, at time.Time) Command {
	return Command{
		CommandID:   uuid.New(),
		BookID:      bookID,
		TotalCopies: totalCopies,
		At:          core.ToOccurredAt(at),
	}
}

// Result describes the copy counts after the command.
type Result struct {
	BookID          uuid.UUID
	TotalCopies     int
	AvailableCopies int
}
