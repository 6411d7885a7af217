// Package fixtures provides given-helpers for feature tests.
//
// The helpers arrange books, patrons and loans through the real command handlers, so the
// arranged state always has the journal entries a production run would have produced.
package fixtures
