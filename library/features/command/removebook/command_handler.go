package removebook

import (
	"context"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// CommandHandler orchestrates removals: Validate -> Lock -> Decide -> Persist, retried on concurrency conflicts.
type CommandHandler struct {
	store        loanstore.Transactor
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

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store loanstore.Transactor, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle removes the book from the catalog.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	if err := shell.ValidateCommand(command); err != nil {
		return Result{}, shell.NewErrorResult(shell.RetryMetrics{Attempts: 1}), err
	}

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return Result{}, shell.NewErrorResult(retryMetrics), err
	}

	return Result{BookID: command.BookID}, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	return h.store.WithinTx(ctx, func(ctx context.Context, tx loanstore.Tx) error {
		record, err := tx.LockBook(ctx, command.BookID)
		if err != nil {
			return shell.NotFoundAs(err, core.ErrBookNotFound)
		}

		book, err := shell.BookFromRecord(record)
		if err != nil {
			return err
		}

		loanCount, err := tx.CountLoansForBook(ctx, command.BookID)
		if err != nil {
			return err
		}

		decision := Decide(book, loanCount, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		if err := tx.DeleteBook(ctx, command.BookID); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, decision.Event, shell.MetadataCausedBy(command.CommandID))
	})
}
