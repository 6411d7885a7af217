// Package bookavailability implements the Book Availability query use case.
// It reports the copy ledger of one book.
package bookavailability
