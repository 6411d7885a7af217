// Package changepatroncategory implements the Change Patron Category use case.
//
// The borrow limit is only re-derived from the new category when the command asks for it.
// Moving a patron below its number of active loans is a policy violation unless the loan
// policy allows it.
package changepatroncategory
