package removebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "RemoveBookFromCatalog"
)

// Command represents the intent to remove a book from the catalog.
type Command struct {
	CommandID uuid.UUID         `validate:"required"`
	BookID    uuid.UUID         `validate:"required"`
	At        core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, at time.Time) Command {
	return Command{
		CommandID: uuid.New(),
		BookID:    bookID,
		At:        core.ToOccurredAt(at),
	}
}

// Result identifies the removed book.
type Result struct {
	BookID uuid.UUID
}
