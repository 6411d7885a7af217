package core

import (
	"fmt"
	"time"
)

const (
	defaultLoanPeriod      = 14 * 24 * time.Hour
	defaultExtensionPeriod = 7 * 24 * time.Hour
	defaultFeePerDay       = Money(100)
	defaultStandardLimit   = 3
	defaultPrivilegedLimit = 5
)

// LoanPolicy holds every tunable rule of the loan lifecycle.
// It is the single place that maps a patron category to a borrow limit.
type LoanPolicy struct {
	LoanPeriod      time.Duration
	ExtensionPeriod time.Duration
	FeePerDay       Money

	// MaxExtensions caps the number of extensions per loan; 0 means unlimited.
	MaxExtensions int

	BorrowLimits map[Category]int

	// AllowCategoryChangeOverLimit permits moving a patron into a category whose limit
	// is below the patron's current number of active loans.
	AllowCategoryChangeOverLimit bool
}

// DefaultLoanPolicy returns a policy with a 14-day loan period, 7-day extensions,
// a late fee of 1.00 per day, and borrow limits of 3 (standard) and 5 (privileged).
func DefaultLoanPolicy() LoanPolicy {
	return LoanPolicy{
		LoanPeriod:      defaultLoanPeriod,
		ExtensionPeriod: defaultExtensionPeriod,
		FeePerDay:       defaultFeePerDay,
		MaxExtensions:   0,
		BorrowLimits: map[Category]int{
			CategoryStandard:   defaultStandardLimit,
			CategoryPrivileged: defaultPrivilegedLimit,
		},
		AllowCategoryChangeOverLimit: false,
	}
}

// BorrowLimitFor returns the borrow limit of a category.
func (p LoanPolicy) BorrowLimitFor(category Category) (int, error) {
	switch category {
	case CategoryStandard, CategoryPrivileged:
		limit, ok := p.BorrowLimits[category]
		if !ok {
			return 0, fmt.Errorf("%w: no borrow limit for %s", ErrInvalidLoanPolicy, category)
		}

		return limit, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
}

// Validate checks that the policy is usable.
func (p LoanPolicy) Validate() error {
	switch {
	case p.LoanPeriod <= 0:
		return fmt.Errorf("%w: loan period must be positive", ErrInvalidLoanPolicy)
	case p.ExtensionPeriod <= 0:
		return fmt.Errorf("%w: extension period must be positive", ErrInvalidLoanPolicy)
	case p.FeePerDay < 0:
		return fmt.Errorf("%w: fee per day must not be negative", ErrInvalidLoanPolicy)
	case p.MaxExtensions < 0:
		return fmt.Errorf("%w: max extensions must not be negative", ErrInvalidLoanPolicy)
	}

	for _, category := range []Category{CategoryStandard, CategoryPrivileged} {
		limit, err := p.BorrowLimitFor(category)
		if err != nil {
			return err
		}

		if limit < 0 {
			return fmt.Errorf("%w: borrow limit for %s must not be negative", ErrInvalidLoanPolicy, category)
		}
	}

	return nil
}
