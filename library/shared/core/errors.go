package core

import (
	"errors"
	"fmt"
)

// The three error classes. Every specific error below wraps exactly one of them.
var (
	// ErrNotFound means a referenced book, patron, or loan does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRuleViolation means the request is valid but not allowed in the current state.
	ErrRuleViolation = errors.New("rule violation")

	// ErrInvariantViolation means stored data is inconsistent. It indicates a bug or manual tampering
	// and is never retried.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Not found.
var (
	ErrBookNotFound   = fmt.Errorf("book %w", ErrNotFound)
	ErrPatronNotFound = fmt.Errorf("patron %w", ErrNotFound)
	ErrLoanNotFound   = fmt.Errorf("loan %w", ErrNotFound)
)

// Rule violations.
var (
	ErrOutOfStock            = fmt.Errorf("%w: no copy of the book is available", ErrRuleViolation)
	ErrBorrowLimitExceeded   = fmt.Errorf("%w: patron has reached the borrow limit", ErrRuleViolation)
	ErrAlreadyReturned       = fmt.Errorf("%w: loan is already returned", ErrRuleViolation)
	ErrCannotExtendOverdue   = fmt.Errorf("%w: an overdue loan cannot be extended", ErrRuleViolation)
	ErrCannotExtendReturned  = fmt.Errorf("%w: a returned loan cannot be extended", ErrRuleViolation)
	ErrExtensionLimitReached = fmt.Errorf("%w: loan has reached the maximum number of extensions", ErrRuleViolation)
	ErrPolicyViolation       = fmt.Errorf("%w: patron has more active loans than the new category allows", ErrRuleViolation)
	ErrBelowOutstanding      = fmt.Errorf("%w: total copies cannot drop below the copies on loan", ErrRuleViolation)
	ErrInvalidCopyCount      = fmt.Errorf("%w: a book needs at least one copy", ErrRuleViolation)
	ErrBookHasLoans          = fmt.Errorf("%w: book is referenced by loans", ErrRuleViolation)
	ErrPatronHasLoans        = fmt.Errorf("%w: patron is referenced by loans", ErrRuleViolation)
	ErrDuplicateISBN         = fmt.Errorf("%w: a book with this isbn already exists", ErrRuleViolation)
	ErrDuplicateEmail        = fmt.Errorf("%w: a patron with this email already exists", ErrRuleViolation)
	ErrUnknownCategory       = fmt.Errorf("%w: unknown patron category", ErrRuleViolation)
	ErrInvalidCommand        = fmt.Errorf("%w: invalid command", ErrRuleViolation)
	ErrInvalidQuery          = fmt.Errorf("%w: invalid query", ErrRuleViolation)
)

// Invariant violations.
var (
	ErrOverRelease          = fmt.Errorf("%w: released more copies than the book has", ErrInvariantViolation)
	ErrNegativeAvailability = fmt.Errorf("%w: available copies are negative", ErrInvariantViolation)
	ErrCorruptLoanState     = fmt.Errorf("%w: loan state is inconsistent", ErrInvariantViolation)
)

// ErrInvalidLoanPolicy is returned when a LoanPolicy fails validation.
var ErrInvalidLoanPolicy = errors.New("invalid loan policy")

// IsNotFound reports whether err belongs to the not-found class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRuleViolation reports whether err belongs to the rule-violation class.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrRuleViolation)
}

// IsInvariantViolation reports whether err belongs to the invariant-violation class.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}
