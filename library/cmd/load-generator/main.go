// Command load-generator drives concurrent borrow, return and extend traffic against a loan store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-loans-go/library/cmd/internal/bootstrap"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-loans-go/loanstore/memengine"
)

const (
	serviceName = "loans-load-generator"

	engineMemory = "memory"

	defaultRate            = 50
	defaultWorkers         = 8
	defaultInitialBooks    = 200
	defaultInitialPatrons  = 100
	defaultCopiesPerBook   = 2
	defaultScenarioWeights = "50,30,10,10" // borrow, return, extend, lookup
)

// Config holds the command line configuration of the load generator.
type Config struct {
	Rate                 int
	Workers              int
	Duration             time.Duration
	Engine               string
	InitialBooks         int
	InitialPatrons       int
	CopiesPerBook        int
	ScenarioWeights      []int
	PolicyPath           string
	ObservabilityEnabled bool
	OTLPEndpoint         string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Load generator failed: %v", err)
	}
}

func run() error {
	cfg := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, err := config.LoadLoanPolicy(cfg.PolicyPath)
	if err != nil {
		return err
	}

	obs, err := bootstrap.NewObservability(ctx, cfg.ObservabilityEnabled, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up observability: %w", err)
	}
	defer func() {
		if shutdownErr := obs.Shutdown(); shutdownErr != nil {
			log.Printf("Observability shutdown failed: %v", shutdownErr)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg, obs)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()

	handlers, err := NewHandlers(store, policy, obs)
	if err != nil {
		return fmt.Errorf("failed to create handlers: %w", err)
	}

	loadGen := NewLoadGenerator(handlers, cfg)

	log.Printf("Load generator started: engine=%s, rate=%d req/s, workers=%d, scenario_weights=%v, observability=%v",
		cfg.Engine, cfg.Rate, cfg.Workers, cfg.ScenarioWeights, obs.Enabled())
	log.Printf("Press Ctrl+C to stop...")

	runCtx := ctx
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	err = loadGen.Run(runCtx)
	loadGen.LogStats("Final stats")

	return err
}

func openStore(ctx context.Context, cfg Config, obs bootstrap.Observability) (Store, func(), error) {
	if cfg.Engine == engineMemory {
		return memengine.NewStore(), func() {}, nil
	}

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.Engine, config.PostgresDSN(), obs.StoreOptions()...)
	if err != nil {
		return nil, nil, err
	}

	return store, closeStore, nil
}

func parseFlags() Config {
	var (
		rate            = flag.Int("rate", defaultRate, "Requests per second")
		workers         = flag.Int("workers", defaultWorkers, "Concurrent workers")
		duration        = flag.Duration("duration", 0, "Stop after this duration, 0 runs until interrupted")
		engine          = flag.String("engine", bootstrap.AdapterPGXPool, "Store engine: memory, pgx.pool, sql.db or sqlx.db")
		initialBooks    = flag.Int("initial-books", defaultInitialBooks, "Number of books to add initially")
		initialPatrons  = flag.Int("initial-patrons", defaultInitialPatrons, "Number of patrons to register initially")
		copiesPerBook   = flag.Int("copies-per-book", defaultCopiesPerBook, "Copies of each initial book")
		scenarioWeights = flag.String("scenario-weights", defaultScenarioWeights, "Comma-separated weights for borrow,return,extend,lookup scenarios")
		policyPath      = flag.String("policy", "", "Path of a YAML loan policy file")
		observability   = flag.Bool("observability-enabled", false, "Enable OpenTelemetry observability")
		otlpEndpoint    = flag.String("otlp-endpoint", config.DefaultOTLPEndpoint, "OTLP gRPC endpoint")
	)

	flag.Parse()

	weights, err := parseScenarioWeights(*scenarioWeights)
	if err != nil {
		log.Fatalf("Invalid scenario weights '%s': %v", *scenarioWeights, err)
	}

	if *rate < 1 || *workers < 1 {
		log.Fatalf("Rate and workers must be positive, got rate=%d workers=%d", *rate, *workers)
	}

	return Config{
		Rate:                 *rate,
		Workers:              *workers,
		Duration:             *duration,
		Engine:               *engine,
		InitialBooks:         *initialBooks,
		InitialPatrons:       *initialPatrons,
		CopiesPerBook:        *copiesPerBook,
		ScenarioWeights:      weights,
		PolicyPath:           *policyPath,
		ObservabilityEnabled: *observability,
		OTLPEndpoint:         *otlpEndpoint,
	}
}

func parseScenarioWeights(weightsStr string) ([]int, error) {
	parts := strings.Split(weightsStr, ",")
	if len(parts) != scenarioCount {
		return nil, fmt.Errorf("expected %d weights, got %d", scenarioCount, len(parts))
	}

	weights := make([]int, scenarioCount)
	total := 0
	for i, part := range parts {
		weight, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid weight '%s': %w", part, err)
		}
		if weight < 0 || weight > 100 {
			return nil, fmt.Errorf("weight %d out of range [0, 100]", weight)
		}
		weights[i] = weight
		total += weight
	}

	if total != 100 {
		return nil, fmt.Errorf("weights must sum to 100, got %d", total)
	}

	return weights, nil
}
