// Package sweepoverdue implements the Sweep Overdue Loans use case.
//
// The sweep moves every Open loan whose due date has passed to Overdue. It works in batches,
// one transaction per batch, and locks candidates with SKIP LOCKED so it never waits on live
// borrow or return traffic. Each transition is atomic on its own, so running the sweep twice,
// or concurrently, transitions every loan exactly once.
package sweepoverdue
