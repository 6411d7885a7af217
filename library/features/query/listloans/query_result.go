package listloans

import (
	"time"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// LoanInfo represents one loan as of the query time.
type LoanInfo struct {
	LoanID     core.LoanIDString
	BookID     core.BookIDString
	PatronID   core.PatronIDString
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	Status     string
	Extensions int
}

// Loans represents the query result.
type Loans struct {
	Loans []LoanInfo
	Count int
}
