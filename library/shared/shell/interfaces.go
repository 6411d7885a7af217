package shell

import (
	"context"
)

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow inside one transaction: lock, reconstitute, decide, persist.
// They return a feature-specific result, plus HandlerResult containing business outcomes (idempotency)
// and execution metadata (retry info).
// This interface is designed to be wrapped with observability decorators.
type CoreCommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, HandlerResult, error)
}

// CoreQueryHandler defines the contract for components that serve read queries.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
