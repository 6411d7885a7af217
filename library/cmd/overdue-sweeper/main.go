// Command overdue-sweeper periodically marks open loans past their due date as overdue.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-loans-go/library/cmd/internal/bootstrap"
	"github.com/AntonStoeckl/library-loans-go/library/features/command/sweepoverdue"
	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/config"
)

const (
	serviceName     = "loans-overdue-sweeper"
	defaultInterval = time.Minute
)

// Config holds the command line configuration of the sweeper.
type Config struct {
	Interval             time.Duration
	BatchSize            int
	AdapterType          string
	Once                 bool
	ObservabilityEnabled bool
	OTLPEndpoint         string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Overdue sweeper failed: %v", err)
	}
}

func run() error {
	cfg := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := bootstrap.NewObservability(ctx, cfg.ObservabilityEnabled, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up observability: %w", err)
	}
	defer func() {
		if shutdownErr := obs.Shutdown(); shutdownErr != nil {
			log.Printf("Observability shutdown failed: %v", shutdownErr)
		}
	}()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.AdapterType, config.PostgresDSN(), obs.StoreOptions()...)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()

	handler, err := bootstrap.WrapCommandHandler[sweepoverdue.Command, sweepoverdue.Result](
		obs,
		sweepoverdue.NewCommandHandler(
			store,
			sweepoverdue.WithRetryOptions(obs.RetryOptions(sweepoverdue.Command{}.CommandType())...),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create sweep handler: %w", err)
	}

	sweeper := NewSweeper(handler, cfg.BatchSize, time.Now)

	log.Printf("Overdue sweeper started: adapter=%s, interval=%v, batch_size=%d, observability=%v",
		cfg.AdapterType, cfg.Interval, cfg.BatchSize, obs.Enabled())

	if cfg.Once {
		_, err := sweeper.SweepOnce(ctx)
		return err
	}

	err = sweeper.Run(ctx, cfg.Interval)
	log.Printf("Overdue sweeper stopped")

	return err
}

func parseFlags() Config {
	var (
		interval      = flag.Duration("interval", defaultInterval, "Time between two sweeps")
		batchSize     = flag.Int("batch-size", sweepoverdue.DefaultBatchSize, "Loans transitioned per transaction")
		adapterType   = flag.String("adapter", bootstrap.AdapterPGXPool, "Database adapter: pgx.pool, sql.db or sqlx.db")
		once          = flag.Bool("once", false, "Sweep once and exit")
		observability = flag.Bool("observability-enabled", false, "Enable OpenTelemetry observability")
		otlpEndpoint  = flag.String("otlp-endpoint", config.DefaultOTLPEndpoint, "OTLP gRPC endpoint")
	)

	flag.Parse()

	if *interval <= 0 {
		log.Fatalf("Invalid interval %v: must be positive", *interval)
	}

	return Config{
		Interval:             *interval,
		BatchSize:            *batchSize,
		AdapterType:          *adapterType,
		Once:                 *once,
		ObservabilityEnabled: *observability,
		OTLPEndpoint:         *otlpEndpoint,
	}
}
