package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/library-loans-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/extendloan"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/registerpatron"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-loans-go/library/features/query/activeloansbypatron"
	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell"
)

const (
	scenarioBorrow = iota
	scenarioReturn
	scenarioExtend
	scenarioLookup
	scenarioCount
)

const (
	operationTimeout = 5 * time.Second
	statsInterval    = 10 * time.Second
)

var scenarioNames = [scenarioCount]string{"borrow", "return", "extend", "lookup"}

// Stats are the counters of a run. Rejected counts business rule violations like an out of stock book.
type Stats struct {
	Requests  int64
	Succeeded int64
	Rejected  int64
	Failed    int64
}

// LoadGenerator seeds a catalog and a patron base and then replays weighted
// borrow, return, extend and lookup scenarios at a fixed rate.
type LoadGenerator struct {
	handlers Handlers
	config   Config
	limiter  *rate.Limiter

	bookIDs   []uuid.UUID
	patronIDs []uuid.UUID
	loans     *loanPool

	requests  atomic.Int64
	succeeded atomic.Int64
	rejected  atomic.Int64
	failed    atomic.Int64
	startTime time.Time
}

// NewLoadGenerator creates a new LoadGenerator with the provided handlers and configuration.
func NewLoadGenerator(handlers Handlers, config Config) *LoadGenerator {
	return &LoadGenerator{
		handlers: handlers,
		config:   config,
		limiter:  rate.NewLimiter(rate.Limit(config.Rate), 1),
		loans:    &loanPool{},
	}
}

// Run seeds the store and generates load until ctx is done.
// Only seeding failures are returned; scenario errors are counted.
func (lg *LoadGenerator) Run(ctx context.Context) error {
	if err := lg.seed(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	lg.startTime = time.Now()

	g, gctx := errgroup.WithContext(ctx)

	for range lg.config.Workers {
		g.Go(func() error {
			for {
				if err := lg.limiter.Wait(gctx); err != nil {
					return nil
				}

				lg.executeScenario(gctx)
			}
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(statsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				lg.LogStats("Stats")
			}
		}
	})

	return g.Wait()
}

// Stats returns a snapshot of the counters.
func (lg *LoadGenerator) Stats() Stats {
	return Stats{
		Requests:  lg.requests.Load(),
		Succeeded: lg.succeeded.Load(),
		Rejected:  lg.rejected.Load(),
		Failed:    lg.failed.Load(),
	}
}

// LogStats logs the counters with the given prefix.
func (lg *LoadGenerator) LogStats(prefix string) {
	stats := lg.Stats()
	duration := time.Since(lg.startTime)

	if stats.Requests == 0 || duration <= 0 {
		log.Printf("%s: no requests", prefix)
		return
	}

	log.Printf("%s: %d requests in %v (%.1f req/s), %d succeeded, %d rejected, %d failed (%.1f%%), %d goroutines",
		prefix,
		stats.Requests,
		duration.Truncate(time.Second),
		float64(stats.Requests)/duration.Seconds(),
		stats.Succeeded,
		stats.Rejected,
		stats.Failed,
		float64(stats.Failed)/float64(stats.Requests)*100,
		runtime.NumGoroutine())
}

// seed adds the initial books and registers the initial patrons, Workers at a time.
func (lg *LoadGenerator) seed(ctx context.Context) error {
	lg.bookIDs = make([]uuid.UUID, lg.config.InitialBooks)
	lg.patronIDs = make([]uuid.UUID, lg.config.InitialPatrons)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lg.config.Workers)

	for i := range lg.bookIDs {
		bookID := uuid.New()
		lg.bookIDs[i] = bookID

		g.Go(func() error {
			command := addbook.BuildCommand(
				bookID,
				randomISBN(),
				"Load Test Book "+strconv.Itoa(i),
				"Test Author",
				"Test Publisher",
				2024,
				lg.config.CopiesPerBook,
				time.Now(),
			)
			_, _, err := lg.handlers.AddBook.Handle(gctx, command)

			return err
		})
	}

	for i := range lg.patronIDs {
		patronID := uuid.New()
		lg.patronIDs[i] = patronID

		category := "standard"
		if i%5 == 0 {
			category = "privileged"
		}

		g.Go(func() error {
			command := registerpatron.BuildCommand(
				patronID,
				"Load Test Patron "+strconv.Itoa(i),
				patronID.String()+"@loadtest.example.com",
				category,
				time.Now(),
			)
			_, _, err := lg.handlers.RegisterPatron.Handle(gctx, command)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("Seeded %d books and %d patrons", len(lg.bookIDs), len(lg.patronIDs))

	return nil
}

// executeScenario runs a single scenario chosen by the configured weights and counts its outcome.
func (lg *LoadGenerator) executeScenario(ctx context.Context) {
	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	scenario := lg.selectScenario()

	var err error
	switch scenario {
	case scenarioBorrow:
		err = lg.runBorrowScenario(opCtx)
	case scenarioReturn:
		err = lg.runReturnScenario(opCtx)
	case scenarioExtend:
		err = lg.runExtendScenario(opCtx)
	case scenarioLookup:
		err = lg.runLookupScenario(opCtx)
	}

	switch {
	case errors.Is(err, errNothingToDo):
		return
	case ctx.Err() != nil && (shell.IsCancellationError(err) || shell.IsTimeoutError(err)):
		// the run is ending; the operation was cut short, not failed
		return
	}

	lg.requests.Add(1)

	switch {
	case err == nil:
		lg.succeeded.Add(1)
	case core.IsRuleViolation(err):
		lg.rejected.Add(1)
	default:
		lg.failed.Add(1)
		log.Printf("Scenario error (%s): %v", scenarioNames[scenario], err)
	}
}

// selectScenario chooses a scenario based on the configured weights.
func (lg *LoadGenerator) selectScenario() int {
	r := rand.IntN(100) //nolint:gosec // load generation, weak random is fine

	for scenario, weight := range lg.config.ScenarioWeights {
		if r < weight {
			return scenario
		}
		r -= weight
	}

	return scenarioLookup
}

func (lg *LoadGenerator) runBorrowScenario(ctx context.Context) error {
	if len(lg.bookIDs) == 0 || len(lg.patronIDs) == 0 {
		return errNothingToDo
	}

	command := borrowbook.BuildCommand(uuid.New(), pick(lg.bookIDs), pick(lg.patronIDs), time.Now())

	result, _, err := lg.handlers.BorrowBook.Handle(ctx, command)
	if err != nil {
		return err
	}

	lg.loans.add(result.LoanID)

	return nil
}

func (lg *LoadGenerator) runReturnScenario(ctx context.Context) error {
	loanID, ok := lg.loans.take()
	if !ok {
		return errNothingToDo
	}

	_, _, err := lg.handlers.ReturnLoan.Handle(ctx, returnloan.BuildCommand(loanID, time.Now()))
	if err != nil && !core.IsRuleViolation(err) {
		// not returned, keep it for a later attempt
		lg.loans.add(loanID)
	}

	return err
}

func (lg *LoadGenerator) runExtendScenario(ctx context.Context) error {
	loanID, ok := lg.loans.peek()
	if !ok {
		return errNothingToDo
	}

	_, _, err := lg.handlers.ExtendLoan.Handle(ctx, extendloan.BuildCommand(loanID, time.Now()))

	return err
}

func (lg *LoadGenerator) runLookupScenario(ctx context.Context) error {
	if len(lg.patronIDs) == 0 {
		return errNothingToDo
	}

	_, err := lg.handlers.ActiveLoans.Handle(ctx, activeloansbypatron.BuildQuery(pick(lg.patronIDs), time.Now()))

	return err
}

var errNothingToDo = errors.New("nothing to do")

// loanPool holds the ids of loans the generator opened and has not returned yet.
type loanPool struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (p *loanPool) add(loanID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ids = append(p.ids, loanID)
}

// take removes and returns a random loan id.
func (p *loanPool) take() (uuid.UUID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.ids) == 0 {
		return uuid.Nil, false
	}

	i := rand.IntN(len(p.ids)) //nolint:gosec // load generation, weak random is fine
	loanID := p.ids[i]
	p.ids[i] = p.ids[len(p.ids)-1]
	p.ids = p.ids[:len(p.ids)-1]

	return loanID, true
}

// peek returns a random loan id and keeps it in the pool.
func (p *loanPool) peek() (uuid.UUID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.ids) == 0 {
		return uuid.Nil, false
	}

	return p.ids[rand.IntN(len(p.ids))], true //nolint:gosec // load generation, weak random is fine
}

func pick(ids []uuid.UUID) uuid.UUID {
	return ids[rand.IntN(len(ids))] //nolint:gosec // load generation, weak random is fine
}

// randomISBN returns a random ISBN-13 in the 978 prefix with a valid check digit.
func randomISBN() string {
	digits := fmt.Sprintf("978%09d", rand.IntN(1_000_000_000)) //nolint:gosec // load generation, weak random is fine

	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}

	return digits + strconv.Itoa((10-sum%10)%10)
}
