package facades

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
)

// Database hands out a fresh store connection per invocation. The
// credentials are re-resolved on every Acquire; the release func must
// run before the invocation returns, on success and failure alike.
type Database struct {
	provider DSNProvider
	connect  func(ctx context.Context, dsn string) (*sqlx.DB, error)
}

// NewDatabase builds a facade over the given credential provider.
func NewDatabase(provider DSNProvider) *Database {
	return &Database{
		provider: provider,
		connect: func(ctx context.Context, dsn string) (*sqlx.DB, error) {
			return sqlx.ConnectContext(ctx, "pgx", dsn)
		},
	}
}

// Acquire resolves credentials, opens a connection, and returns it with
// a release func that always closes it.
func (d *Database) Acquire(ctx context.Context) (*sqlx.DB, func(), error) {
	dsn, err := d.provider.DSN(ctx)
	if err != nil {
		return nil, nil, err
	}

	db, err := d.connect(ctx, dsn)
	if err != nil {
		logger.Log.Errorw("failed to connect to store", "error", err)
		return nil, nil, err
	}

	// One short-lived connection per invocation; no pool reuse.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	release := func() {
		if err := db.Close(); err != nil {
			logger.Log.Errorw("failed to close store connection", "error", err)
		}
	}
	return db, release, nil
}
