// Package removebook implements the Remove Book from Catalog use case.
// A book can only be removed while no loan, returned or not, references it.
package removebook
