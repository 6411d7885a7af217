package changepatroncategory

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// CommandHandler orchestrates category changes: Validate -> Lock -> Decide -> Persist, retried on concurrency conflicts.
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

// Handle moves the patron into the requested category.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	if err := shell.ValidateCommand(command); err != nil {
		return Result{}, shell.NewErrorResult(shell.RetryMetrics{Attempts: 1}), err
	}

	var result Result
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return result, shell.NewIdempotentResult(retryMetrics), nil
	}

	return result, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, bool, error) {
	var decision Decision

	err := h.store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
		record, err := tx.LockPatron(ctx, command.PatronID)
		if err != nil {
			return shell.NotFoundAs(err, core.ErrPatronNotFound)
		}

		patron, err := shell.PatronFromRecord(record)
		if err != nil {
			return err
		}

		activeLoanCount, err := tx.CountActiveLoans(ctx, command.PatronID)
		if err != nil {
			return err
		}

		decision = Decide(State{Patron: patron, ActiveLoanCount: activeLoanCount}, command, h.policy)
		if err := decision.HasError(); err != nil {
			return err
		}

		if decision.IsIdempotent() {
			return nil
		}

		if err := tx.UpdatePatron(ctx, shell.PatronRecordForUpdate(decision.Patron)); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, decision.Event, shell.MetadataCausedBy(command.CommandID))
	})
	if err != nil {
		return Result{}, false, err
	}

	return Result{
		PatronID:    decision.Patron.PatronID,
		Category:    decision.Patron.Category.String(),
		BorrowLimit: decision.Patron.BorrowLimit,
	}, decision.IsIdempotent(), nil
}
