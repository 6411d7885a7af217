package addbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

const (
	commandType = "AddBookToCatalog"
)

// Command represents the intent to add a book with a number of copies to the catalog.
type Command struct {
	CommandID       uuid.UUID         `validate:"required"`
	BookID          uuid.UUID         `validate:"required"`
	ISBN            string            `validate:"required,isbn"`
	Title           string            `validate:"required,max=255"`
	Author          string            `validate:"required,max=255"`
	Publisher       string            `validate:"max=255"`
	PublicationYear int               `validate:"gte=0,lte=9999"`
	TotalCopies     int
	At              core.OccurredAtTS `validate:"required"`
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	isbn string,
	title string,
	author string,
	publisher string,
	publicationYear int,
	totalCopies int,
	at time.Time,
) Command {

	return Command{
		CommandID:       uuid.New(),
		BookID:          bookID,
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Publisher:       publisher,
		PublicationYear: publicationYear,
		TotalCopies:     totalCopies,
		At:              core.ToOccurredAt(at),
	}
}

// Result describes the catalog entry after the command.
type Result struct {
	BookID          uuid.UUID
	TotalCopies     int
	AvailableCopies int
}
