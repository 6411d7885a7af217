// Package testdoubles provides test doubles (spies) for the observability interfaces of the loanstore
// engines and the command and query handlers:
//   - MetricsCollectorSpy: captures duration, counter and value records for verification
//   - TracingCollectorSpy: captures spans with their start and finish attributes
//   - ContextualLoggerSpy: captures structured log calls per level
//
// These test doubles enable testing of observability instrumentation without telemetry backends.
package testdoubles
