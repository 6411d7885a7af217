// Package shell is the imperative shell around the functional core in library/shared/core.
//
// It translates between domain types and the flat loanstore records, serializes domain events
// into journal entries and back, validates commands, retries transactions that lost a
// concurrency conflict, and provides the observability helpers used by the command and query handlers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
