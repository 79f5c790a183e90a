package db

import (
	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Connect create connection with database
func Connect(cfg *config.Config, logger lumber.Logger) (core.DB, error) {
	db, err := sqlx.Connect("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}
	logger.Infof("Database connected successfully")

	db.SetMaxIdleConns(constants.MysqlMaxIdleConnection)
	db.SetMaxOpenConns(constants.MysqlMaxOpenConnection)
	db.SetConnMaxLifetime(constants.MysqlMaxConnectionLifetime)

	return New(db, logger), nil
}

// New wraps an open connection pool.
func New(conn *sqlx.DB, logger lumber.Logger) *DB {
	return &DB{conn: conn, logger: logger}
}

func dsn(cfg *config.Config) string {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.DB.User
	mysqlCfg.Passwd = cfg.DB.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = cfg.DB.Host + ":" + cfg.DB.Port
	mysqlCfg.DBName = cfg.DB.Name
	mysqlCfg.ParseTime = true
	mysqlCfg.Params = map[string]string{"charset": "utf8mb4"}
	return mysqlCfg.FormatDSN()
}
