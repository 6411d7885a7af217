// Package listloans implements the List Loans query use case.
//
// Loans are listed newest first, optionally filtered by patron and by status. The status filter
// applies to the status as of the query time, so an open loan past its due date is listed as
// overdue without being written back.
package listloans
