package activeloansbypatron

import (
	"slices"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

// Project builds the ActiveLoans of a patron from its loans.
//
//	GIVEN: the patron and its loans
//	WHEN:  ActiveLoansByPatron is executed
//	THEN:  the open and overdue loans are listed, oldest due date first
//	INCLUDES: the effective status and the accrued late fee of each loan as of query.At
//	EXCLUDES: returned loans
func Project(patron core.Patron, loans []core.Loan, query Query, policy core.LoanPolicy) ActiveLoans {
	infos := make([]LoanInfo, 0, len(loans))
	totalFees := core.Money(0)

	for _, loan := range loans {
		if !loan.IsActive() {
			continue
		}

		fee := core.LateFee(loan.DueAt(), query.At, policy.FeePerDay)
		totalFees += fee

		infos = append(infos, LoanInfo{
			LoanID:     loan.LoanID.String(),
			BookID:     loan.BookID.String(),
			BorrowedAt: loan.BorrowedAt(),
			DueAt:      loan.DueAt(),
			Status:     loan.EffectiveStatus(query.At).String(),
			Extensions: loan.Extensions(),
			AccruedFee: fee,
		})
	}

	slices.SortFunc(infos, func(a, b LoanInfo) int {
		return a.DueAt.Compare(b.DueAt)
	})

	return ActiveLoans{
		PatronID:       patron.PatronID.String(),
		BorrowLimit:    patron.BorrowLimit,
		RemainingSlots: max(patron.BorrowLimit-len(infos), 0),
		Loans:          infos,
		Count:          len(infos),
		TotalFees:      totalFees,
	}
}
