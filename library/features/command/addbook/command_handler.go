package addbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// CommandHandler orchestrates adding books: Validate -> Lock -> Decide -> Persist, retried on concurrency conflicts.
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

// Handle adds the book to the catalog.
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
		existing, err := lockExisting(ctx, tx, command)
		if err != nil {
			return err
		}

		decision = Decide(existing, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		if decision.IsIdempotent() {
			return nil
		}

		if err := tx.InsertBook(ctx, shell.BookRecordFrom(decision.Book, command.At)); err != nil {
			return shell.DuplicateAs(err, core.ErrDuplicateISBN)
		}

		return shell.AppendDomainEvent(ctx, tx, decision.Event, shell.MetadataCausedBy(command.CommandID))
	})
	if err != nil {
		return Result{}, false, err
	}

	return Result{
		BookID:          decision.Book.BookID,
		TotalCopies:     decision.Book.TotalCopies(),
		AvailableCopies: decision.Book.AvailableCopies(),
	}, decision.IsIdempotent(), nil
}

func lockExisting(ctx context.Context, tx loanstore.Tx, command Command) (*core.Book, error) {
	record, err := tx.LockBook(ctx, command.BookID)
	switch {
	case errors.Is(err, loanstore.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}

	book, err := shell.BookFromRecord(record)
	if err != nil {
		return nil, err
	}

	return &book, nil
}
