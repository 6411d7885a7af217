package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoanStatus is the state of a loan. Transitions are Open -> Overdue, Open -> Returned and Overdue -> Returned.
type LoanStatus int

const (
	LoanOpen LoanStatus = iota + 1
	LoanOverdue
	LoanReturned
)

const (
	loanOpenName     = "open"
	loanOverdueName  = "overdue"
	loanReturnedName = "returned"
)

// String returns the persisted name of the status.
func (s LoanStatus) String() string {
	switch s {
	case LoanOpen:
		return loanOpenName
	case LoanOverdue:
		return loanOverdueName
	case LoanReturned:
		return loanReturnedName
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseLoanStatus maps a persisted name to a LoanStatus.
func ParseLoanStatus(name string) (LoanStatus, error) {
	switch name {
	case loanOpenName:
		return LoanOpen, nil
	case loanOverdueName:
		return LoanOverdue, nil
	case loanReturnedName:
		return LoanReturned, nil
	default:
		return 0, fmt.Errorf("%w: unknown status %q", ErrCorruptLoanState, name)
	}
}

// Loan records that a patron holds one copy of a book.
// The lifecycle fields are private so that they only change through the transition functions.
type Loan struct {
	LoanID   uuid.UUID
	BookID   uuid.UUID
	PatronID uuid.UUID

	borrowedAt time.Time
	dueAt      time.Time
	returnedAt time.Time
	status     LoanStatus
	extensions int
}

// OpenLoan starts a new loan at borrowedAt, due after the policy's loan period.
func OpenLoan(loanID, bookID, patronID uuid.UUID, borrowedAt time.Time, policy LoanPolicy) Loan {
	borrowedAt = ToOccurredAt(borrowedAt)

	return Loan{
		LoanID:     loanID,
		BookID:     bookID,
		PatronID:   patronID,
		borrowedAt: borrowedAt,
		dueAt:      borrowedAt.Add(policy.LoanPeriod),
		status:     LoanOpen,
	}
}

// ReconstituteLoan rebuilds a loan from stored fields and checks the state invariants:
// DueAt after BorrowedAt, and a return timestamp present if and only if the loan is returned.
func ReconstituteLoan(
	loanID, bookID, patronID uuid.UUID,
	borrowedAt, dueAt time.Time,
	returnedAt *time.Time,
	status LoanStatus,
	extensions int,
) (Loan, error) {

	loan := Loan{
		LoanID:     loanID,
		BookID:     bookID,
		PatronID:   patronID,
		borrowedAt: borrowedAt,
		dueAt:      dueAt,
		status:     status,
		extensions: extensions,
	}

	if !dueAt.After(borrowedAt) || extensions < 0 {
		return Loan{}, ErrCorruptLoanState
	}

	switch status {
	case LoanOpen, LoanOverdue:
		if returnedAt != nil {
			return Loan{}, ErrCorruptLoanState
		}
	case LoanReturned:
		if returnedAt == nil {
			return Loan{}, ErrCorruptLoanState
		}
		loan.returnedAt = *returnedAt
	default:
		return Loan{}, ErrCorruptLoanState
	}

	return loan, nil
}

// BorrowedAt returns when the loan was opened.
func (l Loan) BorrowedAt() time.Time { return l.borrowedAt }

// DueAt returns when the book is due.
func (l Loan) DueAt() time.Time { return l.dueAt }

// Status returns the stored status, which may lag behind EffectiveStatus until the next sweep.
func (l Loan) Status() LoanStatus { return l.status }

// Extensions returns how many extensions were granted.
func (l Loan) Extensions() int { return l.extensions }

// ReturnedAt returns the return timestamp and whether the loan was returned.
func (l Loan) ReturnedAt() (time.Time, bool) {
	return l.returnedAt, l.status == LoanReturned
}

// IsActive reports whether the loan counts against the patron's borrow limit.
func (l Loan) IsActive() bool {
	switch l.status {
	case LoanOpen, LoanOverdue:
		return true
	case LoanReturned:
		return false
	default:
		return false
	}
}

// IsPastDue reports whether now is after the due date.
func (l Loan) IsPastDue(now time.Time) bool {
	return now.After(l.dueAt)
}

// EffectiveStatus is the status as of now: an Open loan past its due date is Overdue
// even if the sweep has not persisted the transition yet.
func (l Loan) EffectiveStatus(now time.Time) LoanStatus {
	switch l.status {
	case LoanOpen:
		if l.IsPastDue(now) {
			return LoanOverdue
		}

		return LoanOpen
	case LoanOverdue, LoanReturned:
		return l.status
	default:
		return l.status
	}
}

// MarkOverdue moves an Open loan past its due date to Overdue. changed is false for every other loan.
func MarkOverdue(loan Loan, now time.Time) (updated Loan, changed bool, err error) {
	switch loan.status {
	case LoanOpen:
		if !loan.IsPastDue(now) {
			return loan, false, nil
		}

		loan.status = LoanOverdue

		return loan, true, nil
	case LoanOverdue, LoanReturned:
		return loan, false, nil
	default:
		return loan, false, ErrCorruptLoanState
	}
}

// Return closes an Open or Overdue loan at now and reports the late fee.
func Return(loan Loan, now time.Time, policy LoanPolicy) (updated Loan, fee Money, err error) {
	switch loan.status {
	case LoanOpen, LoanOverdue:
		loan.returnedAt = ToOccurredAt(now)
		loan.status = LoanReturned

		return loan, LateFee(loan.dueAt, loan.returnedAt, policy.FeePerDay), nil
	case LoanReturned:
		return loan, 0, ErrAlreadyReturned
	default:
		return loan, 0, ErrCorruptLoanState
	}
}

// Extend pushes the due date of an Open loan that is not yet past due by the policy's extension period.
func Extend(loan Loan, now time.Time, policy LoanPolicy) (Loan, error) {
	switch loan.status {
	case LoanOpen:
		if loan.IsPastDue(now) {
			return loan, ErrCannotExtendOverdue
		}

		if policy.MaxExtensions > 0 && loan.extensions >= policy.MaxExtensions {
			return loan, ErrExtensionLimitReached
		}

		loan.dueAt = loan.dueAt.Add(policy.ExtensionPeriod)
		loan.extensions++

		return loan, nil
	case LoanOverdue:
		return loan, ErrCannotExtendOverdue
	case LoanReturned:
		return loan, ErrCannotExtendReturned
	default:
		return loan, ErrCorruptLoanState
	}
}
