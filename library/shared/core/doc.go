// Package core contains the pure domain model of the library loan engine:
// the inventory ledger of a book's copies, the patron borrowing policy,
// the loan state machine with due dates, extensions and late fees, and the journal events
// that record every accepted change.
//
// Nothing in this package performs I/O. Command features load records through the shell,
// call the functions in here (usually from a feature's Decide function), and persist the result.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
