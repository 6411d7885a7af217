package registerpatron

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "RegisterPatron"
)

// Command represents the intent to register a new patron.
type Command struct {
	CommandID uuid.UUID         `validate:"required"`
	PatronID  uuid.UUID         `validate:"required"`
	Name      string            `validate:"required,max=255"`
	Email     string            `validate:"required,email"`
	Category  string            `validate:"required"`
	At        core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID uuid.UUID, name string, email string, category string, at time.Time) Command {
	return Command{
		CommandID: uuid.New(),
		PatronID:  patronID,
		Name:      name,
		Email:     email,
		Category:  category,
		At:        core.ToOccurredAt(at),
	}
}

// Result describes the registered patron.
type Result struct {
	PatronID    uuid.UUID
	Category    string
	BorrowLimit int
}
