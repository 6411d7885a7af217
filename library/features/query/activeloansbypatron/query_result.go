package activeloansbypatron

import (
	"time"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// LoanInfo represents one active loan as of the query time.
type LoanInfo struct {
	LoanID     core.LoanIDString
	BookID     core.BookIDString
	BorrowedAt time.Time
	DueAt      time.Time
	Status     string
	Extensions int
	AccruedFee core.Money
}

// ActiveLoans represents the query result.
type ActiveLoans struct {
	PatronID       core.PatronIDString
	BorrowLimit    int
	RemainingSlots int
	Loans          []LoanInfo
	Count          int
	TotalFees      core.Money
}
