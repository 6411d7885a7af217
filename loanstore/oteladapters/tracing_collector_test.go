package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-loans-go/loanstore/oteladapters"
)

func givenTracingCollector(t *testing.T) (*oteladapters.TracingCollector, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewTracingCollector(provider.Tracer("library-loans-test")), recorder
}

func attributeValue(attrs []attribute.KeyValue, key string) string {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.AsString()
		}
	}

	return ""
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	collector, recorder := givenTracingCollector(t)

	// act
	ctx, span := collector.StartSpan(context.Background(), "loanstore.tx", map[string]string{"operation": "borrow"})
	span.AddAttribute("loan_id", "l-1")
	collector.FinishSpan(span, "committed", map[string]string{"duration_ms": "1.25"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "loanstore.tx", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Equal(t, "borrow", attributeValue(ended[0].Attributes(), "operation"))
	assert.Equal(t, "l-1", attributeValue(ended[0].Attributes(), "loan_id"))
	assert.Equal(t, "1.25", attributeValue(ended[0].Attributes(), "duration_ms"))
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "idempotent", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error},
		{status: "canceled", expectedCode: codes.Error},
		{status: "timeout", expectedCode: codes.Error},
		{status: "concurrency_conflict", expectedCode: codes.Error},
		{status: "rejected", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			collector, recorder := givenTracingCollector(t)
			_, span := collector.StartSpan(context.Background(), "command.handle", nil)

			// act
			collector.FinishSpan(span, tc.status, nil)

			// assert
			ended := recorder.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, tc.expectedCode, ended[0].Status().Code)
		})
	}
}

func Test_TracingCollector_ChildSpansShareTrace(t *testing.T) {
	// arrange
	collector, recorder := givenTracingCollector(t)

	// act
	ctx, parent := collector.StartSpan(context.Background(), "command.handle", nil)
	_, child := collector.StartSpan(ctx, "loanstore.tx", nil)
	collector.FinishSpan(child, "committed", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().TraceID(), ended[0].SpanContext().TraceID())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}
