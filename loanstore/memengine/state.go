package memengine

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

type state struct {
	books   map[uuid.UUID]loanstore.BookRecord
	patrons map[uuid.UUID]loanstore.PatronRecord
	loans   map[uuid.UUID]loanstore.LoanRecord
	events  loanstore.StorableEvents
	nextSeq uint64
}

func newState() state {
	return state{
		books:   make(map[uuid.UUID]loanstore.BookRecord),
		patrons: make(map[uuid.UUID]loanstore.PatronRecord),
		loans:   make(map[uuid.UUID]loanstore.LoanRecord),
		nextSeq: 1,
	}
}

func (s state) clone() state {
	cloned := state{
		books:   make(map[uuid.UUID]loanstore.BookRecord, len(s.books)),
		patrons: make(map[uuid.UUID]loanstore.PatronRecord, len(s.patrons)),
		loans:   make(map[uuid.UUID]loanstore.LoanRecord, len(s.loans)),
		// appends of the copy must never write into the committed backing array
		events:  s.events[:len(s.events):len(s.events)],
		nextSeq: s.nextSeq,
	}

	for id, book := range s.books {
		cloned.books[id] = book
	}

	for id, patron := range s.patrons {
		cloned.patrons[id] = patron
	}

	for id, loan := range s.loans {
		cloned.loans[id] = cloneLoan(loan)
	}

	return cloned
}

func cloneLoan(loan loanstore.LoanRecord) loanstore.LoanRecord {
	if loan.ReturnedAt != nil {
		returnedAt := *loan.ReturnedAt
		loan.ReturnedAt = &returnedAt
	}

	return loan
}
