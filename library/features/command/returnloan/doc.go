// Package returnloan implements the Return Loan use case.
//
// Returning closes an Open or Overdue loan, puts the copy back on the shelf and reports the
// late fee: every started day after the due date costs the policy's fee per day. The fee is
// not stored on the loan; it is part of the result and of the LoanReturned journal entry.
package returnloan
