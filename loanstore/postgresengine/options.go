package postgresengine

import (
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithBooksTableName sets the table name for books.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableName
		}

		s.tables.books = tableName

		return nil
	}
}

// WithPatronsTableName sets the table name for patrons.
func WithPatronsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableName
		}

		s.tables.patrons = tableName

		return nil
	}
}

// WithLoansTableName sets the table name for loans.
func WithLoansTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableName
		}

		s.tables.loans = tableName

		return nil
	}
}

// WithEventsTableName sets the table name for the loan journal.
func WithEventsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableName
		}

		s.tables.events = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: transaction outcomes and durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like rollback or cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger loanstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// Log records then carry the active trace and span when tracing is enabled.
func WithContextualLogger(logger loanstore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives transaction and query durations, database errors, and concurrency conflicts.
func WithMetrics(collector loanstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// It receives one span per transaction and per read query.
func WithTracing(collector loanstore.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
