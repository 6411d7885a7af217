package main

import (
	"github.com/AntonStoeckl/library-loans-go/library/cmd/internal/bootstrap"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/extendloan"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/registerpatron"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-loans-go/library/features/query/activeloansbypatron"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

// Store is what the load generator needs from an engine.
type Store interface {
	loanstore.Transactor
	loanstore.Reader
}

// Handlers bundles the handlers the scenarios call.
type Handlers struct {
	AddBook        shell.CoreCommandHandler[addbook.Command, addbook.Result]
	RegisterPatron shell.CoreCommandHandler[registerpatron.Command, registerpatron.Result]
	BorrowBook     shell.CoreCommandHandler[borrowbook.Command, borrowbook.Result]
	ReturnLoan     shell.CoreCommandHandler[returnloan.Command, returnloan.Result]
	ExtendLoan     shell.CoreCommandHandler[extendloan.Command, extendloan.Result]
	ActiveLoans    shell.CoreQueryHandler[activeloansbypatron.Query, activeloansbypatron.ActiveLoans]
}

// NewHandlers creates all handlers on store with the given policy, each wrapped with the configured observability.
func NewHandlers(store Store, policy core.LoanPolicy, obs bootstrap.Observability) (Handlers, error) {
	var handlers Handlers
	var err error

	if handlers.AddBook, err = bootstrap.WrapCommandHandler[addbook.Command, addbook.Result](
		obs,
		addbook.NewCommandHandler(
			store,
			addbook.WithRetryOptions(obs.RetryOptions(addbook.Command{}.CommandType())...),
		),
	); err != nil {
		return Handlers{}, err
	}

	if handlers.RegisterPatron, err = bootstrap.WrapCommandHandler[registerpatron.Command, registerpatron.Result](
		obs,
		registerpatron.NewCommandHandler(
			store, registerpatron.WithLoanPolicy(policy),
			registerpatron.WithRetryOptions(obs.RetryOptions(registerpatron.Command{}.CommandType())...),
		),
	); err != nil {
		return Handlers{}, err
	}

	if handlers.BorrowBook, err = bootstrap.WrapCommandHandler[borrowbook.Command, borrowbook.Result](
		obs,
		borrowbook.NewCommandHandler(
			store, borrowbook.WithLoanPolicy(policy),
			borrowbook.WithRetryOptions(obs.RetryOptions(borrowbook.Command{}.CommandType())...),
		),
	); err != nil {
		return Handlers{}, err
	}

	if handlers.ReturnLoan, err = bootstrap.WrapCommandHandler[returnloan.Command, returnloan.Result](
		obs,
		returnloan.NewCommandHandler(
			store, returnloan.WithLoanPolicy(policy),
			returnloan.WithRetryOptions(obs.RetryOptions(returnloan.Command{}.CommandType())...),
		),
	); err != nil {
		return Handlers{}, err
	}

	if handlers.ExtendLoan, err = bootstrap.WrapCommandHandler[extendloan.Command, extendloan.Result](
		obs,
		extendloan.NewCommandHandler(
			store, extendloan.WithLoanPolicy(policy),
			extendloan.WithRetryOptions(obs.RetryOptions(extendloan.Command{}.CommandType())...),
		),
	); err != nil {
		return Handlers{}, err
	}

	if handlers.ActiveLoans, err = bootstrap.WrapQueryHandler[activeloansbypatron.Query, activeloansbypatron.ActiveLoans](
		obs,
		activeloansbypatron.NewQueryHandler(store, activeloansbypatron.WithLoanPolicy(policy)),
	); err != nil {
		return Handlers{}, err
	}

	return handlers, nil
}
