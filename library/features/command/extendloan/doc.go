// Package extendloan implements the Extend Loan use case.
//
// An Open loan that is not yet past its due date gets the policy's extension period added to
// its due date. Overdue and returned loans cannot be extended, and the policy may cap the number
// of extensions per loan.
package extendloan
