// Package borrowbook implements the Borrow Book use case.
//
// A patron borrows one copy of a book. The handler locks the patron and the book row,
// counts the patron's active loans, and lets the pure Decide function apply the borrow limit
// and the inventory ledger. The new loan, the updated book and a BookBorrowed journal entry
// are written in the same transaction.
//
// Borrowing is idempotent per LoanID: repeating a command whose loan already exists returns
// the existing loan without touching the inventory.
package borrowbook
