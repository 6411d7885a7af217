package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	centsPerUnit = 100
	day          = 24 * time.Hour
)

// Money is an amount in cents.
type Money int64

// String formats the amount with two decimals, e.g. "3.00".
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}

	return fmt.Sprintf("%s%d.%02d", sign, m/centsPerUnit, m%centsPerUnit)
}

// ParseMoney parses an amount with at most two decimals, e.g. "1", "1.5" or "1.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)

	units, fraction, hasFraction := strings.Cut(s, ".")
	negative := strings.HasPrefix(units, "-")
	units = strings.TrimPrefix(units, "-")

	if units == "" || (hasFraction && (fraction == "" || len(fraction) > 2)) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	whole, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := int64(0)
	if hasFraction {
		if len(fraction) == 1 {
			fraction += "0"
		}

		cents, err = strconv.ParseInt(fraction, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	amount := Money(whole*centsPerUnit + cents)
	if negative {
		amount = -amount
	}

	return amount, nil
}

// LateFee charges feePerDay for every started day between dueAt and returnedAt.
// Returns zero for returns on or before the due date.
func LateFee(dueAt time.Time, returnedAt time.Time, feePerDay Money) Money {
	return Money(DaysLate(dueAt, returnedAt)) * feePerDay
}

// DaysLate counts the started days between dueAt and at; zero if at is not after dueAt.
func DaysLate(dueAt time.Time, at time.Time) int64 {
	if !at.After(dueAt) {
		return 0
	}

	late := at.Sub(dueAt)

	return int64((late + day - 1) / day)
}
