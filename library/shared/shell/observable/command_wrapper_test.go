package observable_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	. "github.com/AntonStoeckl/library-loans-go/testutil/observability/testdoubles" //nolint:revive
)

type mockCommand struct{}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

type mockResult struct {
	Value string
}

type mockCoreHandler struct {
	result        mockResult
	handlerResult shell.HandlerResult
	err           error
	calls         []mockCommand
}

func (h *mockCoreHandler) Handle(_ context.Context, command mockCommand) (mockResult, shell.HandlerResult, error) {
	h.calls = append(h.calls, command)
	return h.result, h.handlerResult, h.err
}

func newMockHandler(handlerResult shell.HandlerResult, err error) *mockCoreHandler {
	return &mockCoreHandler{
		result:        mockResult{Value: "done"},
		handlerResult: handlerResult,
		err:           err,
	}
}

type spies struct {
	metrics *MetricsCollectorSpy
	tracing *TracingCollectorSpy
	logger  *ContextualLoggerSpy
}

func givenObservedWrapper(t *testing.T, handler *mockCoreHandler) (*observable.CommandWrapper[mockCommand, mockResult], spies) {
	t.Helper()

	s := spies{
		metrics: NewMetricsCollectorSpy(true),
		tracing: NewTracingCollectorSpy(true),
		logger:  NewContextualLoggerSpy(true),
	}

	wrapper, err := observable.NewCommandWrapper[mockCommand, mockResult](
		handler,
		observable.WithCommandMetrics[mockCommand, mockResult](s.metrics),
		observable.WithCommandTracing[mockCommand, mockResult](s.tracing),
		observable.WithCommandContextualLogging[mockCommand, mockResult](s.logger),
	)
	require.NoError(t, err)

	return wrapper, s
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	expected := shell.HandlerResult{RetryAttempts: 1, LastErrorType: "none"}
	handler := newMockHandler(expected, nil)
	wrapper, s := givenObservedWrapper(t, handler)

	// act
	result, handlerResult, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, mockResult{Value: "done"}, result)
	assert.Equal(t, expected, handlerResult)
	assert.Len(t, handler.calls, 1)

	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert())
	assert.True(t, s.metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithStatus("success").
		Assert())
	assert.False(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).Assert())
	assert.True(t, s.tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStartAttribute("command_type", "TestCommand").
		WithStatus("success").
		Assert())
	assert.True(t, s.logger.HasInfoLog(shell.LogMsgCommandStarted))
	assert.True(t, s.logger.HasInfoLog(shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_Idempotent(t *testing.T) {
	// arrange
	wrapper, s := givenObservedWrapper(t, newMockHandler(shell.HandlerResult{Idempotent: true, RetryAttempts: 1}, nil))

	// act
	_, _, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).
		WithLabel("command_type", "TestCommand").
		Assert())
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithStatus("idempotent").
		Assert())
}

func Test_CommandWrapper_Handle_WithRetries_RecordsRetryMetrics(t *testing.T) {
	// arrange
	withRetries := shell.HandlerResult{
		RetryAttempts:   3,
		TotalRetryDelay: 30 * time.Millisecond,
		LastErrorType:   "none",
	}
	wrapper, s := givenObservedWrapper(t, newMockHandler(withRetries, nil))

	// act
	_, handlerResult, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, withRetries, handlerResult)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("command_type", "TestCommand").
		WithLabel("attempt_number", "2").
		Assert())
	assert.True(t, s.metrics.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).
		WithLabel("command_type", "TestCommand").
		Assert())
}

func Test_CommandWrapper_Handle_ClassifiesErrors(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		status        string
		counterMetric string
		logLevel      string
		logMessage    string
	}{
		{
			name:          "rule violation",
			err:           core.ErrOutOfStock,
			status:        shell.StatusRejected,
			counterMetric: shell.CommandHandlerRuleViolationMetric,
			logLevel:      LevelWarn,
			logMessage:    shell.LogMsgCommandRejected,
		},
		{
			name:          "not found",
			err:           core.ErrLoanNotFound,
			status:        shell.StatusRejected,
			counterMetric: shell.CommandHandlerRuleViolationMetric,
			logLevel:      LevelWarn,
			logMessage:    shell.LogMsgCommandRejected,
		},
		{
			name:          "invariant violation",
			err:           core.ErrOverRelease,
			status:        shell.StatusError,
			counterMetric: shell.CommandHandlerCallsMetric,
			logLevel:      LevelError,
			logMessage:    shell.LogMsgCommandFailed,
		},
		{
			name:          "concurrency conflict",
			err:           errors.Join(loanstore.ErrCommitFailed, loanstore.ErrConcurrencyConflict),
			status:        shell.StatusConcurrencyConflict,
			counterMetric: shell.CommandHandlerConcurrencyConflictMetric,
			logLevel:      LevelError,
			logMessage:    shell.LogMsgCommandFailed,
		},
		{
			name:          "canceled",
			err:           context.Canceled,
			status:        shell.StatusCanceled,
			counterMetric: shell.CommandHandlerCanceledMetric,
			logLevel:      LevelError,
			logMessage:    shell.LogMsgCommandFailed,
		},
		{
			name:          "timeout",
			err:           context.DeadlineExceeded,
			status:        shell.StatusTimeout,
			counterMetric: shell.CommandHandlerTimeoutMetric,
			logLevel:      LevelError,
			logMessage:    shell.LogMsgCommandFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			wrapper, s := givenObservedWrapper(t, newMockHandler(shell.HandlerResult{RetryAttempts: 1}, tc.err))

			// act
			_, _, err := wrapper.Handle(context.Background(), mockCommand{})

			// assert
			assert.Equal(t, tc.err, err)
			assert.True(t, s.metrics.HasCounterRecordForMetric(tc.counterMetric).
				WithLabel("command_type", "TestCommand").
				WithStatus(tc.status).
				Assert())
			assert.True(t, s.tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).
				WithStatus(tc.status).
				WithEndAttribute("error", tc.err.Error()).
				Assert())

			records := s.logger.GetRecords(tc.logLevel)
			require.Len(t, records, 1)
			assert.Equal(t, tc.logMessage, records[0].Message)
		})
	}
}

func Test_CommandWrapper_Handle_RetriesExhausted(t *testing.T) {
	// arrange
	exhausted := shell.HandlerResult{RetryAttempts: 6, RetriesExhausted: true, LastErrorType: "concurrency_conflict"}
	wrapper, s := givenObservedWrapper(t, newMockHandler(exhausted, loanstore.ErrConcurrencyConflict))

	// act
	_, _, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, loanstore.ErrConcurrencyConflict)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).
		WithLabel("command_type", "TestCommand").
		Assert())
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, nil)
	wrapper, err := observable.NewCommandWrapper[mockCommand, mockResult](handler)
	require.NoError(t, err)

	// act
	result, _, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "done", result.Value)
	assert.Len(t, handler.calls, 1)
}

func Test_CommandWrapper_Handle_FallsBackToPlainLogger(t *testing.T) {
	// arrange
	logger := NewContextualLoggerSpy(true)
	wrapper, err := observable.NewCommandWrapper[mockCommand, mockResult](
		newMockHandler(shell.HandlerResult{RetryAttempts: 1}, core.ErrBorrowLimitExceeded),
		observable.WithCommandLogging[mockCommand, mockResult](logger),
	)
	require.NoError(t, err)

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrBorrowLimitExceeded)
	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandStarted))
	assert.True(t, logger.HasWarnLog(shell.LogMsgCommandRejected))
}
