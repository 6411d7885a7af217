package borrowbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a patron to borrow a copy of a book.
type Command struct {
	CommandID uuid.UUID         `validate:"required"`
	LoanID    uuid.UUID         `validate:"required"`
	BookID    uuid.UUID         `validate:"required"`
	PatronID  uuid.UUID         `validate:"required"`
	At        core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, bookID uuid.UUID, patronID uuid.UUID, at time.Time) Command {
	return Command{
		CommandID: uuid.New(),
		LoanID:    loanID,
		BookID:    bookID,
		PatronID:  patronID,
		At:        core.ToOccurredAt(at),
	}
}

// Result is returned by a successful or idempotent borrow.
type Result struct {
	LoanID uuid.UUID
	DueAt  time.Time
}
