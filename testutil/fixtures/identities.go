package fixtures

import (
	"fmt"
	"sync/atomic"
	"time"
)

var sequence atomic.Uint64

func init() {
	sequence.Store(uint64(time.Now().UnixNano() % 1_000_000_000))
}

// UniqueISBN returns a valid ISBN-13 that no other call in this process returns.
func UniqueISBN() string {
	body := fmt.Sprintf("978%09d", sequence.Add(1)%1_000_000_000)

	sum := 0
	for i, digit := range body {
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(digit-'0') * weight
	}

	return fmt.Sprintf("%s%d", body, (10-sum%10)%10)
}

// UniqueEmail returns an email address that no other call in this process returns.
func UniqueEmail() string {
	return fmt.Sprintf("patron-%d@example.com", sequence.Add(1))
}

// FixedClock is the reference time of feature tests.
func FixedClock() time.Time {
	return time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
}
