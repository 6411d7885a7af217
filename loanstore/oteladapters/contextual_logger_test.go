package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-loans-go/loanstore/oteladapters"
)

type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func attributesOf(record log.Record) map[string]string {
	attrs := make(map[string]string)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})

	return attrs
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message", "loan_id", "l-1")
	logger.InfoContext(ctx, "info message", "loan_id", "l-1")
	logger.WarnContext(ctx, "warn message", "loan_id", "l-1")
	logger.ErrorContext(ctx, "error message", "loan_id", "l-1")
	logger.Info("plain message", "transitioned", 3)

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message"`)
	assert.Contains(t, output, `"level":"INFO","msg":"info message"`)
	assert.Contains(t, output, `"level":"WARN","msg":"warn message"`)
	assert.Contains(t, output, `"level":"ERROR","msg":"error message"`)
	assert.Contains(t, output, `"loan_id":"l-1"`)
	assert.Contains(t, output, `"transitioned":3`)
}

func Test_SlogBridgeLogger_WithTraceContext(t *testing.T) {
	// arrange
	tracerProvider := sdktrace.NewTracerProvider()
	defer func() { _ = tracerProvider.Shutdown(context.Background()) }()

	ctx, span := tracerProvider.Tracer("test").Start(context.Background(), "borrow")
	defer span.End()

	logger := oteladapters.NewSlogBridgeLogger("library-loans")

	// act & assert
	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "command completed", "command_type", "BorrowBook")
		logger.Warn("no context")
	})
}

func Test_OTelLogger_EmitsRecords(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "book_id", "b-1", "copies", 3)
	logger.WarnContext(ctx, "warn message", "dangling")
	logger.ErrorContext(ctx, "error message", 42, "ignored", "error", "boom")

	// assert
	require.Len(t, recorder.records, 4)

	assert.Equal(t, log.SeverityDebug, recorder.records[0].Severity())
	assert.Equal(t, "debug message", recorder.records[0].Body().AsString())

	assert.Equal(t, log.SeverityInfo, recorder.records[1].Severity())
	assert.Equal(t, map[string]string{"book_id": "b-1", "copies": "3"}, attributesOf(recorder.records[1]))

	assert.Equal(t, log.SeverityWarn, recorder.records[2].Severity())
	assert.Empty(t, attributesOf(recorder.records[2]))

	assert.Equal(t, log.SeverityError, recorder.records[3].Severity())
	assert.Equal(t, "ERROR", recorder.records[3].SeverityText())
	assert.Equal(t, map[string]string{"error": "boom"}, attributesOf(recorder.records[3]))
}
