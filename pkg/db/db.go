package db

import (
	"context"
	"errors"
	"time"

	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/avast/retry-go/v4"
	"github.com/jmoiron/sqlx"
)

// DB is a pool of zero or more underlying connections to
// the herald database.
type DB struct {
	conn   *sqlx.DB
	logger lumber.Logger
}

// Execute executes fn with the connection pool. Any error that is returned from fn is returned
// from Execute.
func (db *DB) Execute(fn func(conn *sqlx.DB) error) error {
	return fn(db.conn)
}

// ExecuteTransactionWithRetry runs fn in a transaction and retries the transaction
// on deadlock or lock wait timeout.
func (db *DB) ExecuteTransactionWithRetry(
	ctx context.Context,
	maxRetries uint,
	delay,
	maxJitter time.Duration,
	errorMsg string,
	fn func(tx *sqlx.Tx) error) error {
	return retry.Do(func() error {
		return db.executeTransaction(ctx, fn)
	}, retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(maxRetries),
		retry.Delay(delay),
		retry.MaxJitter(maxJitter),
		retry.RetryIf(retryableTx),
		retry.OnRetry(func(n uint, err error) {
			db.logger.Errorf("%s, retry %d, error: %+v", errorMsg, n, err)
		}),
	)
}

func retryableTx(err error) bool {
	parseErr := errs.SQLError(err)
	return errors.Is(parseErr, errs.ErrDeadlock) || errors.Is(parseErr, errs.ErrLockWaitTimeout)
}

// executeTransaction commits the transaction when fn succeeds and rolls it back otherwise.
// The error of fn or of the commit is returned.
func (db *DB) executeTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			if rerr := tx.Rollback(); rerr != nil {
				db.logger.Errorf("error while performing rollback, %v", rerr)
			}
			db.logger.Errorf("panic while executing query: %+v", p)
			panic(p)
		}
		if err != nil {
			// a cancelled context already rolled the transaction back, see sqlx.DB.BeginTxx
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				if rerr := tx.Rollback(); rerr != nil {
					db.logger.Errorf("error while performing rollback, %v", rerr)
				}
			}
			return
		}
		err = tx.Commit()
	}()
	err = fn(tx)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
