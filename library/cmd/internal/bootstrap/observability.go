package bootstrap

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-loans-go/loanstore/oteladapters"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine"
)

const serviceVersion = "dev"

// Observability holds the adapters shared by the store and the handler wrappers of one binary.
// The zero value has every adapter disabled.
type Observability struct {
	ContextualLogger shell.ContextualLogger
	MetricsCollector shell.MetricsCollector
	TracingCollector shell.TracingCollector

	providers *config.ObservabilityProviders
}

// NewObservability installs OpenTelemetry providers exporting to endpoint and creates the adapters on top of them.
// With enabled false it returns the zero value.
func NewObservability(ctx context.Context, enabled bool, serviceName string, endpoint string) (Observability, error) {
	if !enabled {
		return Observability{}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, serviceName, serviceVersion, endpoint)
	if err != nil {
		return Observability{}, err
	}

	return Observability{
		ContextualLogger: oteladapters.NewSlogBridgeLogger(serviceName),
		MetricsCollector: oteladapters.NewMetricsCollector(otel.Meter(serviceName)),
		TracingCollector: oteladapters.NewTracingCollector(otel.Tracer(serviceName)),
		providers:        providers,
	}, nil
}

// Enabled reports whether any adapter is set.
func (o Observability) Enabled() bool {
	return o.ContextualLogger != nil || o.MetricsCollector != nil || o.TracingCollector != nil
}

// Shutdown flushes the providers, if any were installed.
func (o Observability) Shutdown() error {
	if o.providers == nil {
		return nil
	}

	return o.providers.Shutdown()
}

// StoreOptions returns the postgres engine options for the configured adapters.
func (o Observability) StoreOptions() []postgresengine.Option {
	var options []postgresengine.Option

	if o.ContextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(o.ContextualLogger))
	}

	if o.MetricsCollector != nil {
		options = append(options, postgresengine.WithMetrics(o.MetricsCollector))
	}

	if o.TracingCollector != nil {
		options = append(options, postgresengine.WithTracing(o.TracingCollector))
	}

	return options
}

// RetryOptions returns the retry options for the command handler of commandType.
// With metrics enabled, retries and backoff delays are recorded under that command type.
func (o Observability) RetryOptions(commandType string) []shell.RetryOption {
	if o.MetricsCollector == nil {
		return nil
	}

	return []shell.RetryOption{shell.WithMetrics(o.MetricsCollector, commandType)}
}

// WrapCommandHandler wraps a core command handler with the configured adapters.
func WrapCommandHandler[C shell.Command, R any](
	o Observability,
	handler shell.CoreCommandHandler[C, R],
) (*observable.CommandWrapper[C, R], error) {

	var options []observable.CommandOption[C, R]

	if o.MetricsCollector != nil {
		options = append(options, observable.WithCommandMetrics[C, R](o.MetricsCollector))
	}

	if o.TracingCollector != nil {
		options = append(options, observable.WithCommandTracing[C, R](o.TracingCollector))
	}

	if o.ContextualLogger != nil {
		options = append(options, observable.WithCommandContextualLogging[C, R](o.ContextualLogger))
	}

	return observable.NewCommandWrapper(handler, options...)
}

// WrapQueryHandler wraps a core query handler with the configured adapters.
func WrapQueryHandler[Q shell.Query, R any](
	o Observability,
	handler shell.CoreQueryHandler[Q, R],
) (*observable.QueryWrapper[Q, R], error) {

	var options []observable.QueryOption[Q, R]

	if o.MetricsCollector != nil {
		options = append(options, observable.WithQueryMetrics[Q, R](o.MetricsCollector))
	}

	if o.TracingCollector != nil {
		options = append(options, observable.WithQueryTracing[Q, R](o.TracingCollector))
	}

	if o.ContextualLogger != nil {
		options = append(options, observable.WithQueryContextualLogging[Q, R](o.ContextualLogger))
	}

	return observable.NewQueryWrapper(handler, options...)
}
