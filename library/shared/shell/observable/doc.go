// Package observable provides wrappers that instrument command and query handlers
// with metrics, tracing and logging while the handlers themselves stay free of observability code.
//
// The wrappers are applied externally at wiring time:
//
//	coreHandler := borrowbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[borrowbook.Command, borrowbook.Result](
//		coreHandler,
//		observable.WithCommandMetrics[borrowbook.Command, borrowbook.Result](metricsCollector),
//		observable.WithCommandTracing[borrowbook.Command, borrowbook.Result](tracingCollector),
//		observable.WithCommandContextualLogging[borrowbook.Command, borrowbook.Result](contextualLogger),
//	)
//
//	result, handlerResult, err := handler.Handle(ctx, command)
//
// Every option is optional; a wrapper without options only delegates.
//
// Outcomes are classified as success, idempotent, rejected (rule violation or not found, logged at warn),
// canceled, timeout, concurrency_conflict, or error (logged at error, including invariant violations).
package observable
