// Package registerpatron implements the Register Patron use case.
//
// The borrow limit of a new patron is derived from its category through the loan policy and
// stays fixed until a category change re-evaluates it. Emails are unique across patrons.
package registerpatron
