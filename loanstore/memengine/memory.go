package memengine

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	logMsgTxCommitted  = "loanstore operation: transaction committed"
	logMsgTxRolledBack = "loanstore operation: transaction rolled back"
	logAttrError       = "error"
	logAttrDurationMS  = "duration_ms"
)

// Store is the in-memory loan store. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	state  state
	logger loanstore.Logger
}

// Option defines a functional option for configuring Store.
type Option func(*Store)

// WithLogger sets the logger for the Store. Committed and rolled back transactions are logged at debug level.
func WithLogger(logger loanstore.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store.
func NewStore(options ...Option) *Store {
	s := &Store{state: newState()}

	for _, option := range options {
		option(s)
	}

	return s
}

// WithinTx executes fn within a transactional copy of the store state.
// The copy replaces the committed state only if fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn loanstore.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	tx := &memTx{state: s.state.clone()}

	if err := fn(ctx, tx); err != nil {
		if s.logger != nil {
			s.logger.Debug(logMsgTxRolledBack, logAttrError, err.Error(), logAttrDurationMS, time.Since(start).Milliseconds())
		}

		return err
	}

	s.state = tx.state

	if s.logger != nil {
		s.logger.Debug(logMsgTxCommitted, logAttrDurationMS, time.Since(start).Milliseconds())
	}

	return nil
}

// ReadBook reads a book. Returns loanstore.ErrRecordNotFound if it does not exist.
func (s *Store) ReadBook(_ context.Context, bookID uuid.UUID) (loanstore.BookRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.state.books[bookID]
	if !ok {
		return loanstore.BookRecord{}, loanstore.ErrRecordNotFound
	}

	return book, nil
}

// ReadPatron reads a patron. Returns loanstore.ErrRecordNotFound if it does not exist.
func (s *Store) ReadPatron(_ context.Context, patronID uuid.UUID) (loanstore.PatronRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patron, ok := s.state.patrons[patronID]
	if !ok {
		return loanstore.PatronRecord{}, loanstore.ErrRecordNotFound
	}

	return patron, nil
}

// QueryLoans returns the loans matching the filter, newest first.
func (s *Store) QueryLoans(_ context.Context, filter loanstore.LoanFilter) (loanstore.LoanRecords, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(loanstore.LoanRecords, 0)

	for _, loan := range s.state.loans {
		if filter.PatronID != uuid.Nil && loan.PatronID != filter.PatronID {
			continue
		}

		if filter.BookID != uuid.Nil && loan.BookID != filter.BookID {
			continue
		}

		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, loan.Status) {
			continue
		}

		result = append(result, cloneLoan(loan))
	}

	slices.SortFunc(result, func(a, b loanstore.LoanRecord) int {
		if c := b.BorrowedAt.Compare(a.BorrowedAt); c != 0 {
			return c
		}

		return compareIDs(a.LoanID, b.LoanID)
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

// QueryEvents returns the journal entries matching the filter in append order.
func (s *Store) QueryEvents(_ context.Context, filter loanstore.JournalFilter) (loanstore.StorableEvents, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(loanstore.StorableEvents, 0)

	for _, event := range s.state.events {
		if matchesJournalFilter(event, filter) {
			result = append(result, event)
		}
	}

	return result, nil
}

func matchesJournalFilter(event loanstore.StorableEvent, filter loanstore.JournalFilter) bool {
	if len(filter.EventTypes()) > 0 && !slices.Contains(filter.EventTypes(), event.EventType) {
		return false
	}

	if !filter.From().IsZero() && event.OccurredAt.Before(filter.From()) {
		return false
	}

	if !filter.Until().IsZero() && event.OccurredAt.After(filter.Until()) {
		return false
	}

	if len(filter.Predicates()) == 0 {
		return true
	}

	payload := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
		return false
	}

	for _, predicate := range filter.Predicates() {
		if val, ok := payload[predicate.Key()].(string); ok && val == predicate.Val() {
			return true
		}
	}

	return false
}

func compareIDs(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}
