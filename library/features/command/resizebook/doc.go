// Package resizebook implements the Resize Book Copies use case.
//
// The library buys or retires copies of a book. Copies on loan stay on loan, so the total and
// the available count move by the same delta, and the total cannot drop below the copies on loan.
package resizebook
