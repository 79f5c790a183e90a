package core

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

// DB is the mysql database holding the status reports.
type DB interface {
	// Execute runs fn against the connection pool.
	Execute(fn func(conn *sqlx.DB) error) error
	// ExecuteTransactionWithRetry runs fn in a transaction, retrying up to
	// maxRetries times when mysql reports a deadlock or lock wait timeout.
	ExecuteTransactionWithRetry(
		ctx context.Context,
		maxRetries uint,
		delay,
		maxJitter time.Duration,
		errorMsg string,
		fn func(tx *sqlx.Tx) error) error
	// Close closes the connection pool.
	Close() error
}

// RedisDB exposes the redis client backing the problem store and the delivery cache.
type RedisDB interface {
	Client() redis.UniversalClient
}

// Vault reads the secrets holding git SCM tokens.
type Vault interface {
	// ReadSecret returns the key/value data stored at path.
	ReadSecret(path string) (map[string]interface{}, error)
}
