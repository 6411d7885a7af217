package loanstore

import "context"

// ConsistencyLevel defines the consistency requirements for read operations outside of transactions.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database.
	// Command handlers always run inside a transaction on the primary, independent of this setting.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database, trading freshness for a reduced
	// load on the primary. Suitable for listing and availability queries.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "loanstore.consistency_level"

// WithStrongConsistency returns a context that signals reads should go to the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals reads may go to a replica database.
//
// Example usage:
//
//	ctx = loanstore.WithEventualConsistency(ctx)
//	loans, err := store.QueryLoans(ctx, filter)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If none is set, StrongConsistency is returned as the safe default.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
