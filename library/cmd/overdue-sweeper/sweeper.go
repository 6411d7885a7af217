package main

import (
	"context"
	"log"
	"time"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/sweepoverdue"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
)

// sweepHandler is satisfied by the core sweep handler and its observable wrapper.
type sweepHandler = shell.CoreCommandHandler[sweepoverdue.Command, sweepoverdue.Result]

// Sweeper runs the overdue sweep on a fixed interval.
type Sweeper struct {
	handler   sweepHandler
	batchSize int
	now       func() time.Time
}

// NewSweeper creates a Sweeper. now is the clock each sweep takes its cutoff from.
func NewSweeper(handler sweepHandler, batchSize int, now func() time.Time) Sweeper {
	return Sweeper{
		handler:   handler,
		batchSize: batchSize,
		now:       now,
	}
}

// SweepOnce runs a single sweep and returns how many loans it marked overdue.
// Loans of batches committed before an error are counted as well.
func (s Sweeper) SweepOnce(ctx context.Context) (int, error) {
	result, handlerResult, err := s.handler.Handle(ctx, sweepoverdue.BuildCommand(s.now(), s.batchSize))
	if err != nil {
		return result.Transitioned, err
	}

	if !handlerResult.Idempotent {
		log.Printf("Marked %d loans overdue (attempts: %d, retry delay: %v)",
			result.Transitioned, handlerResult.RetryAttempts, handlerResult.TotalRetryDelay)
	}

	return result.Transitioned, nil
}

// Run sweeps immediately and then once per interval until ctx is done.
// Failed sweeps are logged and retried on the next tick; invariant violations stop the sweeper.
func (s Sweeper) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_, err := s.SweepOnce(ctx)

		switch {
		case err == nil:
		case shell.IsCancellationError(err):
			return nil
		case core.IsInvariantViolation(err):
			return err
		default:
			log.Printf("Sweep failed, retrying in %v: %v", interval, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
