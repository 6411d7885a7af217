// Package loanhistory implements the Loan History query use case.
//
// The query reads the journal back: every event that names the requested book or patron, in the
// order it was appended, together with its metadata.
package loanhistory
