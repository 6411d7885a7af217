package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// Metric kinds recorded by MetricsCollectorSpy.
const (
	KindDuration = "duration"
	KindCounter  = "counter"
	KindValue    = "value"
)

// MetricsCollectorSpy is a ContextualMetricsCollector implementation that captures metrics calls for testing.
type MetricsCollectorSpy struct {
	records     []SpyMetricRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyMetricRecord represents a recorded metric call. Duration is set for duration records, Value for value records.
type SpyMetricRecord struct {
	Kind     string
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		records:     make([]SpyMetricRecord, 0),
		recordCalls: recordCalls,
	}
}

func (s *MetricsCollectorSpy) record(record SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.Labels = maps.Clone(record.Labels)
	s.records = append(s.records, record)
}

// RecordDuration implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: labels})
}

// IncrementCounter implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: KindCounter, Metric: metric, Labels: labels})
}

// RecordValue implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: labels})
}

// RecordDurationContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

// IncrementCounterContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

// RecordValueContext implements the ContextualMetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// GetRecords returns a copy of all captured records of the given kind.
func (s *MetricsCollectorSpy) GetRecords(kind string) []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyMetricRecord, 0)
	for _, record := range s.records {
		if record.Kind == kind {
			records = append(records, record)
		}
	}

	return records
}

// Reset clears all captured metric records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
// Each condition narrows the set of candidate records; Assert is true if at least one candidate is left.
type MetricRecordMatcher struct {
	candidates []SpyMetricRecord
}

func (s *MetricsCollectorSpy) matcherFor(kind string, metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]SpyMetricRecord, 0)
	for _, record := range s.records {
		if record.Kind == kind && record.Metric == metric {
			candidates = append(candidates, record)
		}
	}

	return &MetricRecordMatcher{candidates: candidates}
}

// HasDurationRecordForMetric starts a fluent chain to check a duration record.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcherFor(KindDuration, metric)
}

// HasCounterRecordForMetric starts a fluent chain to check a counter record.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcherFor(KindCounter, metric)
}

// HasValueRecordForMetric starts a fluent chain to check a value record.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcherFor(KindValue, metric)
}

// CountRecordsForMetric counts how many records of a kind exist for a specific metric.
func (s *MetricsCollectorSpy) CountRecordsForMetric(kind string, metric string) int {
	return len(s.matcherFor(kind, metric).candidates)
}

// WithLabel keeps the records that have the specified label with the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, record := range m.candidates {
		if labelValue, exists := record.Labels[key]; exists && labelValue == value {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// WithStatus keeps the records that have the specified status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithOperation keeps the records that have the specified operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// Assert returns true if all conditions in the fluent chain were met by at least one record.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

var _ loanstore.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
