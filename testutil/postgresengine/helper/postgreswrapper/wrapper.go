package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine"
)

// Adapter type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const connectTimeout = 3 * time.Second

const truncateAll = `TRUNCATE TABLE loan_events, loans, books, patrons RESTART IDENTITY`

// Wrapper abstracts over the three adapter types.
type Wrapper interface {
	GetStore() *postgresengine.Store
	Exec(ctx context.Context, statement string) error
	QueryInt(ctx context.Context, query string) (int, error)
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.pool.Exec(ctx, statement)
	return err
}

func (w *PGXPoolWrapper) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	err := w.pool.QueryRow(ctx, query).Scan(&n)

	return n, err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

func (w *SQLDBWrapper) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	err := w.db.QueryRowContext(ctx, query).Scan(&n)

	return n, err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

func (w *SQLXWrapper) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	err := w.db.GetContext(ctx, &n, query)

	return n, err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig connects with the adapter selected by ADAPTER_TYPE, creates the schema
// and empties all tables. The test is skipped if the database is not reachable.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	wrapper := connect(ctx, t, options...)
	t.Cleanup(wrapper.Close)

	require.NoError(t, wrapper.Exec(ctx, postgresengine.Schema), "error creating the schema")
	CleanUp(t, wrapper)

	return wrapper
}

func connect(ctx context.Context, t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	dsn := config.PostgresDSN()
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		pool, err := config.NewPGXPool(ctx, dsn)
		if err != nil {
			t.Skipf("postgres not reachable: %v", err)
		}

		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating the store")

		return &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db, err := config.NewPostgresSQLDB(ctx, dsn)
		if err != nil {
			t.Skipf("postgres not reachable: %v", err)
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating the store")

		return &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db, err := config.NewPostgresSQLX(ctx, dsn)
		if err != nil {
			t.Skipf("postgres not reachable: %v", err)
		}

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating the store")

		return &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterTypeFromEnv))
	}
}

// CleanUp empties all tables of the default schema.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	require.NoError(t, wrapper.Exec(context.Background(), truncateAll), "error cleaning up the tables")
}

// CountRows counts the rows of table.
func CountRows(t testing.TB, wrapper Wrapper, table string) int {
	t.Helper()

	n, err := wrapper.QueryInt(context.Background(), "SELECT count(*) FROM "+table)
	require.NoError(t, err, "error counting rows of %s", table)

	return n
}
