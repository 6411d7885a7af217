package returnloan

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// CommandHandler orchestrates returns: Validate -> Lock -> Decide -> Persist, retried on concurrency conflicts.
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

// Handle returns the book of a loan and reports the late fee.
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
		state, err := loadState(ctx, tx, command)
		if err != nil {
			return err
		}

		decision = Decide(state, command, h.policy)
		if err := decision.HasError(); err != nil {
			return err
		}

		if err := tx.UpdateBook(ctx, shell.BookRecordForUpdate(decision.Book)); err != nil {
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

	returnedAt, _ := decision.Loan.ReturnedAt()

	return Result{LoanID: decision.Loan.LoanID, ReturnedAt: returnedAt, LateFee: decision.LateFee}, nil
}

// loadState reads the loan unlocked to learn its book, then locks book and loan in that order.
func loadState(ctx context.Context, tx loanstore.Tx, command Command) (State, error) {
	unlocked, err := tx.ReadLoan(ctx, command.LoanID)
	if err != nil {
		return State{}, shell.NotFoundAs(err, core.ErrLoanNotFound)
	}

	bookRecord, err := tx.LockBook(ctx, unlocked.BookID)
	if err != nil {
		return State{}, err
	}

	book, err := shell.BookFromRecord(bookRecord)
	if err != nil {
		return State{}, err
	}

	loanRecord, err := tx.LockLoan(ctx, command.LoanID)
	if err != nil {
		return State{}, shell.NotFoundAs(err, core.ErrLoanNotFound)
	}

	loan, err := shell.LoanFromRecord(loanRecord)
	if err != nil {
		return State{}, err
	}

	return State{Book: book, Loan: loan}, nil
}
