package health

import (
	"context"
	"net/http"
	"time"

	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const checkTimeout = 2 * time.Second

// Check reports whether a dependency of the service is reachable.
type Check func(ctx context.Context) error

// RedisCheck pings redis.
func RedisCheck(redisDB core.RedisDB) Check {
	return func(ctx context.Context) error {
		return redisDB.Client().Ping(ctx).Err()
	}
}

// DBCheck pings the database.
func DBCheck(db core.DB) Check {
	return func(ctx context.Context) error {
		return db.Execute(func(conn *sqlx.DB) error {
			return conn.PingContext(ctx)
		})
	}
}

// Handler for health API
func Handler(signalCtx context.Context, logger lumber.Logger, checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		// If we receive a sigterm/sigint, we return a 500 code,
		// so that the readines k8s probe fails and the pod is removed from traffic
		case <-signalCtx.Done():
			c.Data(http.StatusInternalServerError, gin.MIMEPlain, []byte(http.StatusText(http.StatusInternalServerError)))
			return
		default:
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				logger.Errorf("health check failed: %v", err)
				c.Data(http.StatusServiceUnavailable, gin.MIMEPlain, []byte(http.StatusText(http.StatusServiceUnavailable)))
				return
			}
		}
		c.Data(http.StatusOK, gin.MIMEPlain, []byte(http.StatusText(http.StatusOK)))
	}
}
