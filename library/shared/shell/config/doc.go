// Package config provides connection, telemetry and loan policy configuration
// for the library loans binaries and integration tests.
//
// It contains factory functions for PostgreSQL connections using the three
// supported drivers (pgx.Pool, sql.DB, sqlx.DB), OpenTelemetry providers that
// export to an OTLP gRPC endpoint, and a loader for YAML loan policy files.
//
// This package is part of the shell (infrastructure) layer.
package config
