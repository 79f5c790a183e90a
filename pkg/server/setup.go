package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/api"
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/gin-gonic/gin"
)

const readHeaderTimeout = 10 * time.Second

// ListenAndServe initializes a server to respond to HTTP network requests.
// It returns once ctx is done and the in-flight requests have drained.
func ListenAndServe(ctx context.Context, router *api.Router, cfg *config.Config, logger lumber.Logger) error {
	if cfg.Env != constants.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Infof("Setting up http handler")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("listen: %#v", err)
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infof("Caller has requested graceful shutdown. shutting down the server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("Server Shutdown: error %v", err)
			return err
		}
		return nil
	case err := <-errChan:
		return err
	}
}
