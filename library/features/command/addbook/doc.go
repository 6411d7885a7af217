// Package addbook implements the Add Book to Catalog use case.
//
// A new catalog entry starts with all its copies on the shelf. The ISBN is unique across the
// catalog. Adding a book whose BookID already exists with the same ISBN is a no-op.
package addbook
