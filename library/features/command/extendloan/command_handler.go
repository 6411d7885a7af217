package extendloan

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// CommandHandler orchestrates extensions: Validate -> Lock -> Decide -> Persist, retried on concurrency conflicts.
type CommandHandler struct {
	store        loanstore.Transactor
	policy       core.LoanPolicy
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLoanPolicy replaces the default loan policy.
func WithLoanPolicy(policy core.LoanPolicy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store loanstore.Transactor, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:  store,
		policy: core.DefaultLoanPolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle extends the loan and returns the new due date.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	if err := shell.ValidateCommand(command); err != nil {
		return Result{}, shell.NewErrorResult(shell.RetryMetrics{Attempts: 1}), err
	}

	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{}, shell.NewErrorResult(retryMetrics), err
	}

	return result, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	var decision Decision

	err := h.store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
		record, err := tx.LockLoan(ctx, command.LoanID)
		if err != nil {
			return shell.NotFoundAs(err, core.ErrLoanNotFound)
		}

		loan, err := shell.LoanFromRecord(record)
		if err != nil {
			return err
		}

		decision = Decide(loan, command, h.policy)
		if err := decision.HasError(); err != nil {
			return err
		}

		if err := tx.UpdateLoan(ctx, shell.LoanRecordFrom(decision.Loan)); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, decision.Event, shell.MetadataCausedBy(command.CommandID))
	})
	if err != nil {
		return Result{}, err
	}

	return Result{LoanID: decision.Loan.LoanID, NewDueAt: decision.Loan.DueAt()}, nil
}
