package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-loans-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine"
)

// Adapter types select the database driver the postgres engine runs on.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLX    = "sqlx.db"
)

// ErrUnknownAdapterType is returned for an adapter type that is none of the Adapter constants.
var ErrUnknownAdapterType = errors.New("unknown adapter type")

// OpenStore connects to the database with the given adapter and creates a postgres Store on it.
// With the pgx adapter, reads go to the replica if config.PostgresReplicaDSN differs from dsn.
// The returned close function releases the connection pools.
func OpenStore(ctx context.Context, adapterType string, dsn string, options ...postgresengine.Option) (*postgresengine.Store, func(), error) {
	switch adapterType {
	case AdapterPGXPool:
		pool, err := config.NewPGXPool(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		replicaDSN := config.PostgresReplicaDSN()
		if replicaDSN == dsn {
			store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
			if err != nil {
				pool.Close()
				return nil, nil, err
			}

			return store, pool.Close, nil
		}

		replica, err := config.NewPGXPool(ctx, replicaDSN)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		closeBoth := func() {
			replica.Close()
			pool.Close()
		}

		store, err := postgresengine.NewStoreFromPGXPoolAndReplica(pool, replica, options...)
		if err != nil {
			closeBoth()
			return nil, nil, err
		}

		return store, closeBoth, nil

	case AdapterSQLDB:
		db, err := config.NewPostgresSQLDB(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case AdapterSQLX:
		db, err := config.NewPostgresSQLX(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownAdapterType, adapterType)
	}
}
