package db

import (
	"errors"
	"testing"

	"github.com/LambdaTest/herald/config"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{
		Host: "mysql.internal", Port: "3306", User: "herald", Password: "p@ss", Name: "herald",
	}}
	got := dsn(cfg)
	parsed, err := mysql.ParseDSN(got)
	assert.NoError(t, err)
	assert.Equal(t, "herald", parsed.User)
	assert.Equal(t, "p@ss", parsed.Passwd)
	assert.Equal(t, "mysql.internal:3306", parsed.Addr)
	assert.Equal(t, "herald", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}

func TestRetryableTx(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205}, true},
		{"duplicate entry", &mysql.MySQLError{Number: 1062}, false},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryableTx(tt.err))
		})
	}
}
