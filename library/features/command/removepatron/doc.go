// Package removepatron implements the Remove Patron use case.
// A patron can only be removed while no loan, returned or not, references it.
package removepatron
