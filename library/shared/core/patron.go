package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of patron categories.
type Category int

const (
	CategoryStandard Category = iota + 1
	CategoryPrivileged
)

const (
	categoryStandardName   = "standard"
	categoryPrivilegedName = "privileged"
)

// String returns the persisted name of the category.
func (c Category) String() string {
	switch c {
	case CategoryStandard:
		return categoryStandardName
	case CategoryPrivileged:
		return categoryPrivilegedName
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory maps a persisted or user supplied name to a Category.
func ParseCategory(name string) (Category, error) {
	switch name {
	case categoryStandardName:
		return CategoryStandard, nil
	case categoryPrivilegedName:
		return CategoryPrivileged, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
}

// Patron is a library member. BorrowLimit is fixed from the category at registration
// and only changes when a category change explicitly re-derives it.
type Patron struct {
	PatronID    uuid.UUID
	Name        string
	Email       string
	Category    Category
	BorrowLimit int
	UpdatedAt   time.Time
}

// BuildPatron registers a new patron with the borrow limit of its category.
func BuildPatron(patronID uuid.UUID, name string, email string, category Category, policy LoanPolicy, at time.Time) (Patron, error) {
	limit, err := policy.BorrowLimitFor(category)
	if err != nil {
		return Patron{}, err
	}

	return Patron{
		PatronID:    patronID,
		Name:        name,
		Email:       email,
		Category:    category,
		BorrowLimit: limit,
		UpdatedAt:   ToOccurredAt(at),
	}, nil
}

// CanBorrow reports whether a patron with activeLoanCount open or overdue loans may borrow one more book.
func CanBorrow(patron Patron, activeLoanCount int) bool {
	return activeLoanCount < patron.BorrowLimit
}

// CountActive counts the loans that occupy a slot of the borrow limit.
func CountActive(loans []Loan) int {
	count := 0

	for _, loan := range loans {
		if loan.IsActive() {
			count++
		}
	}

	return count
}

// ChangeCategory moves a patron into another category.
//
// The borrow limit is re-derived from the policy only if reevaluateLimit is set.
// Unless the policy allows it, the change is rejected with ErrPolicyViolation when the patron
// holds more active loans than the new category permits.
// changed is false if the patron already is in the category and keeps its limit.
func ChangeCategory(
	patron Patron,
	newCategory Category,
	activeLoanCount int,
	reevaluateLimit bool,
	policy LoanPolicy,
	at time.Time,
) (updated Patron, changed bool, err error) {

	newLimit, err := policy.BorrowLimitFor(newCategory)
	if err != nil {
		return patron, false, err
	}

	limitChanges := reevaluateLimit && newLimit != patron.BorrowLimit
	if newCategory == patron.Category && !limitChanges {
		return patron, false, nil
	}

	if activeLoanCount > newLimit && !policy.AllowCategoryChangeOverLimit {
		return patron, false, ErrPolicyViolation
	}

	patron.Category = newCategory
	if reevaluateLimit {
		patron.BorrowLimit = newLimit
	}
	patron.UpdatedAt = ToOccurredAt(at)

	return patron, true, nil
}
