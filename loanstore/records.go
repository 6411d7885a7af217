package loanstore

import (
	"time"

	"github.com/google/uuid"
)

// Loan status values as persisted in the loans table.
const (
	LoanStatusOpen     = "open"
	LoanStatusOverdue  = "overdue"
	LoanStatusReturned = "returned"
)

// BookRecord is the persisted shape of a catalog entry and its copy counts.
type BookRecord struct {
	BookID          uuid.UUID
	ISBN            string
	Title           string
	Author          string
	Publisher       string
	PublicationYear int
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PatronRecord is the persisted shape of a patron.
type PatronRecord struct {
	PatronID    uuid.UUID
	Name        string
	Email       string
	Category    string
	BorrowLimit int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LoanRecord is the persisted shape of a loan (borrow record).
// ReturnedAt is nil unless Status is LoanStatusReturned.
type LoanRecord struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	PatronID   uuid.UUID
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	Status     string
	Extensions int
}

// LoanRecords is a slice of LoanRecord.
type LoanRecords = []LoanRecord

// LoanFilter selects loans for read queries. Zero values mean "no restriction".
type LoanFilter struct {
	PatronID uuid.UUID
	BookID   uuid.UUID
	Statuses []string
	Limit    int
}

// ActiveLoanStatuses are the statuses counted against a patron's borrow limit.
func ActiveLoanStatuses() []string {
	return []string{LoanStatusOpen, LoanStatusOverdue}
}
