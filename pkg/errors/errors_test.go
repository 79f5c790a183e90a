package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestPublicationError(t *testing.T) {
	cause := New("api rate limit exceeded")
	err := fmt.Errorf("dispatch: %w", NewPublicationError("githubStatusPublisher", "42", "abc123", cause))

	var pubErr *PublicationError
	assert.True(t, errors.As(err, &pubErr))
	assert.Equal(t, "42", pubErr.BuildID)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, pubErr.Error(), "abc123")
}

func TestSQLError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "dupe", err: &mysql.MySQLError{Number: mysqlDupEntryErrCode}, want: ErrDupeKey},
		{name: "deadlock", err: &mysql.MySQLError{Number: mysqlDeadlockErrCode}, want: ErrDeadlock},
		{name: "lock wait", err: fmt.Errorf("exec: %w", &mysql.MySQLError{Number: mysqlLockWaitTimeoutErrCode}), want: ErrLockWaitTimeout},
		{name: "no rows", err: sql.ErrNoRows, want: ErrRowsNotFound},
		{name: "other", err: ErrNotFound, want: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLError(tt.err))
		})
	}
}
