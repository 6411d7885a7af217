package core

import (
	"time"
)

const (
	// BookBorrowedEventType is the event type identifier.
	BookBorrowedEventType = "BookBorrowed"

	// LoanReturnedEventType is the event type identifier.
	LoanReturnedEventType = "LoanReturned"

	// LoanExtendedEventType is the event type identifier.
	LoanExtendedEventType = "LoanExtended"

	// LoanMarkedOverdueEventType is the event type identifier.
	LoanMarkedOverdueEventType = "LoanMarkedOverdue"
)

// BookBorrowed represents when a patron took a copy of a book on loan.
type BookBorrowed struct {
	LoanID     LoanIDString
	BookID     BookIDString
	PatronID   PatronIDString
	DueAt      time.Time
	OccurredAt OccurredAtTS
}

// BuildBookBorrowed creates a new BookBorrowed event.
func BuildBookBorrowed(loan Loan) BookBorrowed {
	return BookBorrowed{
		LoanID:     loan.LoanID.String(),
		BookID:     loan.BookID.String(),
		PatronID:   loan.PatronID.String(),
		DueAt:      loan.DueAt(),
		OccurredAt: ToOccurredAt(loan.BorrowedAt()),
	}
}

// IsEventType returns the event type identifier.
func (e BookBorrowed) IsEventType() string {
	return BookBorrowedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// LoanWasReturned represents when a borrowed copy came back. LateFeeCents is zero for on-time returns.
type LoanWasReturned struct {
	LoanID       LoanIDString
	BookID       BookIDString
	PatronID     PatronIDString
	DueAt        time.Time
	DaysLate     int64
	LateFeeCents int64
	OccurredAt   OccurredAtTS
}

// BuildLoanReturned creates a new LoanWasReturned event.
func BuildLoanReturned(loan Loan, fee Money) LoanWasReturned {
	returnedAt, _ := loan.ReturnedAt()

	return LoanWasReturned{
		LoanID:       loan.LoanID.String(),
		BookID:       loan.BookID.String(),
		PatronID:     loan.PatronID.String(),
		DueAt:        loan.DueAt(),
		DaysLate:     DaysLate(loan.DueAt(), returnedAt),
		LateFeeCents: int64(fee),
		OccurredAt:   ToOccurredAt(returnedAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanWasReturned) IsEventType() string {
	return LoanReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanWasReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// LoanExtended represents when the due date of a loan was pushed back.
type LoanExtended struct {
	LoanID        LoanIDString
	BookID        BookIDString
	PatronID      PatronIDString
	PreviousDueAt time.Time
	NewDueAt      time.Time
	Extensions    int
	OccurredAt    OccurredAtTS
}

// BuildLoanExtended creates a new LoanExtended event.
func BuildLoanExtended(previousDueAt time.Time, loan Loan, occurredAt time.Time) LoanExtended {
	return LoanExtended{
		LoanID:        loan.LoanID.String(),
		BookID:        loan.BookID.String(),
		PatronID:      loan.PatronID.String(),
		PreviousDueAt: previousDueAt,
		NewDueAt:      loan.DueAt(),
		Extensions:    loan.Extensions(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanExtended) IsEventType() string {
	return LoanExtendedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanExtended) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// LoanMarkedOverdue represents when the sweep moved a loan past its due date to Overdue.
type LoanMarkedOverdue struct {
	LoanID     LoanIDString
	BookID     BookIDString
	PatronID   PatronIDString
	DueAt      time.Time
	OccurredAt OccurredAtTS
}

// BuildLoanMarkedOverdue creates a new LoanMarkedOverdue event.
func BuildLoanMarkedOverdue(loan Loan, occurredAt time.Time) LoanMarkedOverdue {
	return LoanMarkedOverdue{
		LoanID:     loan.LoanID.String(),
		BookID:     loan.BookID.String(),
		PatronID:   loan.PatronID.String(),
		DueAt:      loan.DueAt(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanMarkedOverdue) IsEventType() string {
	return LoanMarkedOverdueEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanMarkedOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}
