package sweepoverdue

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// CommandHandler runs the overdue sweep batch by batch. Each batch is retried on its own.
type CommandHandler struct {
	store        loanstore.Transactor
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for every batch.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store loanstore.Transactor, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle sweeps until a batch comes back short or transitions nothing.
// The result is idempotent when no loan was transitioned.
// On error, loans of already committed batches stay transitioned and are counted in the result.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	if err := shell.ValidateCommand(command); err != nil {
		return Result{}, shell.NewErrorResult(shell.RetryMetrics{Attempts: 1}), err
	}

	var result Result
	var total shell.RetryMetrics

	for {
		var transitioned, locked int

		retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
			var execErr error
			transitioned, locked, execErr = h.sweepBatch(retryCtx, command)

			return execErr
		}, h.retryOptions...)

		total = accumulate(total, retryMetrics)

		if err != nil {
			return result, shell.NewErrorResult(total), err
		}

		result.Transitioned += transitioned

		if locked < command.BatchSize || transitioned == 0 {
			break
		}
	}

	if result.Transitioned == 0 {
		return result, shell.NewIdempotentResult(total), nil
	}

	return result, shell.NewSuccessResult(total), nil
}

// sweepBatch locks one batch of candidates and transitions them in a single transaction.
func (h CommandHandler) sweepBatch(ctx context.Context, command Command) (transitioned int, locked int, err error) {
	err = h.store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
		transitioned = 0

		records, err := tx.LockOverdueCandidates(ctx, command.At, command.BatchSize)
		if err != nil {
			return err
		}
		locked = len(records)

		loans, err := shell.LoansFromRecords(records)
		if err != nil {
			return err
		}

		for _, loan := range loans {
			decision := Decide(loan, command)
			if err := decision.HasError(); err != nil {
				return err
			}

			if decision.IsIdempotent() {
				continue
			}

			if err := tx.UpdateLoan(ctx, shell.LoanRecordFrom(decision.Loan)); err != nil {
				return err
			}

			if err := shell.AppendDomainEvent(ctx, tx, decision.Event, shell.MetadataCausedBy(command.CommandID)); err != nil {
				return err
			}

			transitioned++
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return transitioned, locked, nil
}

// accumulate merges the retry metrics of a batch; only retries add attempts, not the batches themselves.
func accumulate(total shell.RetryMetrics, batch shell.RetryMetrics) shell.RetryMetrics {
	if total.Attempts == 0 {
		total.Attempts = batch.Attempts
	} else {
		total.Attempts += batch.Attempts - 1
	}
	total.TotalDelay += batch.TotalDelay
	total.LastErrorType = batch.LastErrorType
	total.RetriesExhausted = total.RetriesExhausted || batch.RetriesExhausted

	return total
}
