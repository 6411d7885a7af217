// Package activeloansbypatron implements the Active Loans by Patron query use case.
//
// The query lists the open and overdue loans of a patron together with the late fee each loan
// has accrued so far. Statuses are reported as of the query time: an open loan past its due date
// shows as overdue even if the sweep has not persisted the transition yet. Nothing is written.
package activeloansbypatron
