package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	logMsgBeginTxFailed       = "failed to begin transaction"
	logMsgCommitFailed        = "failed to commit transaction"
	logMsgRollbackFailed      = "failed to roll back transaction"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgTxCommitted         = "transaction committed"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "loanstore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrOperation          = "operation"
	logAttrDurationMS         = "duration_ms"

	metricTxDuration           = "loanstore_tx_duration_seconds"
	metricQueryDuration        = "loanstore_query_duration_seconds"
	metricDatabaseErrors       = "loanstore_database_errors_total"
	metricConcurrencyConflicts = "loanstore_concurrency_conflicts_total"

	spanNameTx         = "loanstore.tx"
	spanNameRead       = "loanstore.read"
	spanAttrOperation  = "operation"
	spanAttrStatus     = "status"
	spanAttrDurationMS = "duration_ms"
	spanAttrErrorType  = "error_type"

	statusSuccess             = "success"
	statusError               = "error"
	statusCommitted           = "committed"
	statusRolledBack          = "rolled_back"
	statusConcurrencyConflict = "concurrency_conflict"
	statusDuplicate           = "duplicate"
	statusNotFound            = "not_found"

	errorTypeQuery = "database_query"
	errorTypeExec  = "database_exec"
	errorTypeScan  = "row_scan"

	operationTx = "tx"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, operation string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+operation, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.logger != nil {
		s.logger.Warn(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, allArgs...)
	}
}

func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDurationContext records a duration with context if the collector supports it.
func (s *Store) recordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(loanstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

// incrementCounterContext increments a counter with context if the collector supports it.
func (s *Store) incrementCounterContext(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(loanstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

func (s *Store) recordQueryMetrics(ctx context.Context, operation, status string, duration time.Duration) {
	s.recordDurationContext(ctx, metricQueryDuration, duration, map[string]string{
		spanAttrOperation: operation,
		spanAttrStatus:    status,
	})
}

func (s *Store) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	s.incrementCounterContext(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		spanAttrStatus:    statusError,
		spanAttrErrorType: errorType,
	})
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s *Store) startTraceSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, loanstore.SpanContext) {
	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// === Tracing Observer Pattern ===

// spanObserver encapsulates the span lifecycle of one transaction or read.
type spanObserver struct {
	s    *Store
	span loanstore.SpanContext
}

func (s *Store) startTxTracing(ctx context.Context) (*spanObserver, context.Context) {
	newCtx, span := s.startTraceSpan(ctx, spanNameTx, map[string]string{spanAttrOperation: operationTx})

	return &spanObserver{s: s, span: span}, newCtx
}

func (s *Store) startReadTracing(ctx context.Context, operation string) (*spanObserver, context.Context) {
	newCtx, span := s.startTraceSpan(ctx, spanNameRead, map[string]string{spanAttrOperation: operation})

	return &spanObserver{s: s, span: span}, newCtx
}

// finish completes the span with the given status.
func (o *spanObserver) finish(status string, duration time.Duration) {
	if o.span == nil || o.s.tracingCollector == nil {
		return
	}

	durationMS := fmt.Sprintf("%.2f", toMilliseconds(duration))
	o.span.AddAttribute(spanAttrDurationMS, durationMS)

	o.s.tracingCollector.FinishSpan(o.span, status, map[string]string{spanAttrDurationMS: durationMS})
}

// === Metrics Observer Pattern ===

// txMetricsObserver encapsulates the metrics recorded once per transaction.
type txMetricsObserver struct {
	s   *Store
	ctx context.Context
}

func (s *Store) startTxMetrics(ctx context.Context) *txMetricsObserver {
	return &txMetricsObserver{s: s, ctx: ctx}
}

func (o *txMetricsObserver) record(status string, duration time.Duration) {
	o.s.recordDurationContext(o.ctx, metricTxDuration, duration, map[string]string{
		spanAttrOperation: operationTx,
		spanAttrStatus:    status,
	})

	if status == statusConcurrencyConflict {
		o.s.incrementCounterContext(o.ctx, metricConcurrencyConflicts, map[string]string{
			spanAttrOperation: operationTx,
		})
	}
}

// readStatusFor classifies the error of a read for spans.
func readStatusFor(err error) string {
	if errors.Is(err, loanstore.ErrRecordNotFound) {
		return statusNotFound
	}

	return statusError
}
