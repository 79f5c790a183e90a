package errors

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDupeKey is returned when a unique index rejects a status report row.
	ErrDupeKey = New("resource already exits")
	// ErrDeadlock is returned when there is a transaction deadlock.
	ErrDeadlock = New("mysql transaction deadlock")
	// ErrLockWaitTimeout is returned where there is a mysql lock wait timeout.
	ErrLockWaitTimeout = New("mysql lock wait timeout")
	// ErrRowsNotFound is returned by Scan when QueryRow doesn't return a row.
	ErrRowsNotFound = sql.ErrNoRows
)

// ERROR 1062: Duplicate entry
// ERROR 1213: Deadlock found when trying to get lock; try restarting transaction
// ERROR 1205: Lock wait timeout exceeded; try restarting transaction
const (
	mysqlDupEntryErrCode        = 1062
	mysqlDeadlockErrCode        = 1213
	mysqlLockWaitTimeoutErrCode = 1205
)

// SQLError maps a mysql driver error onto the sentinel errors of this package.
// Errors that do not map are returned unchanged.
func SQLError(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRowsNotFound
		}
		return err
	}
	switch mysqlErr.Number {
	case mysqlDupEntryErrCode:
		return ErrDupeKey
	case mysqlDeadlockErrCode:
		return ErrDeadlock
	case mysqlLockWaitTimeoutErrCode:
		return ErrLockWaitTimeout
	}
	return mysqlErr
}
