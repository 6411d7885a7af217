package borrowbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// CommandHandler orchestrates borrowing: Validate -> Lock -> Decide -> Persist, retried on concurrency conflicts.
// External wrappers handle all observability concerns.
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

// Handle borrows a copy of the book for the patron.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
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

// executeCommand runs one transaction; it is the unit that gets retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, bool, error) {
	var decision Decision

	err := h.store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
		state, err := loadState(ctx, tx, command)
		if err != nil {
			return err
		}

		decision = Decide(state, command, h.policy)
		if err := decision.HasError(); err != nil {
			return err
		}

		if decision.IsIdempotent() {
			return nil
		}

		if err := tx.UpdateBook(ctx, shell.BookRecordForUpdate(decision.Book)); err != nil {
			return err
		}

		if err := tx.InsertLoan(ctx, shell.LoanRecordFrom(decision.Loan)); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, decision.Event, shell.MetadataCausedBy(command.CommandID))
	})
	if err != nil {
		return Result{}, false, err
	}

	return Result{LoanID: decision.Loan.LoanID, DueAt: decision.Loan.DueAt()}, decision.IsIdempotent(), nil
}

// loadState locks patron then book, the order every handler follows.
func loadState(ctx context.Context, tx loanstore.Tx, command Command) (State, error) {
	patronRecord, err := tx.LockPatron(ctx, command.PatronID)
	if err != nil {
		return State{}, shell.NotFoundAs(err, core.ErrPatronNotFound)
	}

	patron, err := shell.PatronFromRecord(patronRecord)
	if err != nil {
		return State{}, err
	}

	activeLoanCount, err := tx.CountActiveLoans(ctx, command.PatronID)
	if err != nil {
		return State{}, err
	}

	bookRecord, err := tx.LockBook(ctx, command.BookID)
	if err != nil {
		return State{}, shell.NotFoundAs(err, core.ErrBookNotFound)
	}

	book, err := shell.BookFromRecord(bookRecord)
	if err != nil {
		return State{}, err
	}

	state := State{Patron: patron, ActiveLoanCount: activeLoanCount, Book: book}

	loanRecord, err := tx.LockLoan(ctx, command.LoanID)
	switch {
	case errors.Is(err, loanstore.ErrRecordNotFound):
		return state, nil
	case err != nil:
		return State{}, err
	}

	existing, err := shell.LoanFromRecord(loanRecord)
	if err != nil {
		return State{}, err
	}
	state.ExistingLoan = &existing

	return state, nil
}
