package listloans

import (
	"fmt"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// storedStatusesFor returns the persisted statuses that can have the requested effective status.
// An open loan past due is overdue as of now, so "overdue" also needs the open rows.
func storedStatusesFor(status string) ([]string, error) {
	if status == "" {
		return nil, nil
	}

	parsed, err := core.ParseLoanStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown loan status %q", core.ErrInvalidQuery, status)
	}

	switch parsed {
	case core.LoanOpen:
		return []string{loanstore.LoanStatusOpen}, nil
	case core.LoanOverdue:
		return loanstore.ActiveLoanStatuses(), nil
	case core.LoanReturned:
		return []string{loanstore.LoanStatusReturned}, nil
	default:
		return nil, fmt.Errorf("%w: unknown loan status %q", core.ErrInvalidQuery, status)
	}
}

// Project builds the listing from loans that are already ordered newest first.
//
//	GIVEN: the loans matching the stored statuses
//	WHEN:  ListLoans is executed
//	THEN:  the loans whose effective status matches are listed, newest first, up to the limit
func Project(loans []core.Loan, query Query) Loans {
	infos := make([]LoanInfo, 0, min(len(loans), query.Limit))

	for _, loan := range loans {
		if len(infos) == query.Limit {
			break
		}

		status := loan.EffectiveStatus(query.At).String()
		if query.Status != "" && status != query.Status {
			continue
		}

		info := LoanInfo{
			LoanID:     loan.LoanID.String(),
			BookID:     loan.BookID.String(),
			PatronID:   loan.PatronID.String(),
			BorrowedAt: loan.BorrowedAt(),
			DueAt:      loan.DueAt(),
			Status:     status,
			Extensions: loan.Extensions(),
		}

		if returnedAt, ok := loan.ReturnedAt(); ok {
			info.ReturnedAt = &returnedAt
		}

		infos = append(infos, info)
	}

	return Loans{
		Loans: infos,
		Count: len(infos),
	}
}
