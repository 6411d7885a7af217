package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// Log levels recorded by ContextualLoggerSpy.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ContextualLoggerSpy is a ContextualLogger implementation that captures contextual logging calls for testing.
// It also satisfies Logger, so it can be passed wherever a plain logger is accepted.
type ContextualLoggerSpy struct {
	records     []SpyLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{
		recordCalls: recordCalls,
	}
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level string, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Context: ctx,
	})
}

// DebugContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelDebug, msg, args)
}

// InfoContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelInfo, msg, args)
}

// WarnContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelWarn, msg, args)
}

// ErrorContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelError, msg, args)
}

// Debug implements the Logger interface for testing.
func (s *ContextualLoggerSpy) Debug(msg string, args ...any) {
	s.record(context.Background(), LevelDebug, msg, args)
}

// Info implements the Logger interface for testing.
func (s *ContextualLoggerSpy) Info(msg string, args ...any) {
	s.record(context.Background(), LevelInfo, msg, args)
}

// Warn implements the Logger interface for testing.
func (s *ContextualLoggerSpy) Warn(msg string, args ...any) {
	s.record(context.Background(), LevelWarn, msg, args)
}

// Error implements the Logger interface for testing.
func (s *ContextualLoggerSpy) Error(msg string, args ...any) {
	s.record(context.Background(), LevelError, msg, args)
}

// Reset clears all recorded log calls.
func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// GetRecords returns a copy of all records of the given level.
func (s *ContextualLoggerSpy) GetRecords(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyLogRecord, 0)
	for _, record := range s.records {
		if record.Level == level {
			records = append(records, record)
		}
	}

	return records
}

// GetTotalRecordCount returns the total number of log records across all levels.
func (s *ContextualLoggerSpy) GetTotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

func (s *ContextualLoggerSpy) hasLog(level string, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *ContextualLoggerSpy) HasDebugLog(message string) bool {
	return s.hasLog(LevelDebug, message)
}

// HasInfoLog checks if an info log with the specified message exists.
func (s *ContextualLoggerSpy) HasInfoLog(message string) bool {
	return s.hasLog(LevelInfo, message)
}

// HasWarnLog checks if a warn log with the specified message exists.
func (s *ContextualLoggerSpy) HasWarnLog(message string) bool {
	return s.hasLog(LevelWarn, message)
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *ContextualLoggerSpy) HasErrorLog(message string) bool {
	return s.hasLog(LevelError, message)
}

var (
	_ loanstore.ContextualLogger = (*ContextualLoggerSpy)(nil)
	_ loanstore.Logger           = (*ContextualLoggerSpy)(nil)
)
