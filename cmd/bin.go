package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/api"
	"github.com/LambdaTest/herald/pkg/api/health"
	"github.com/LambdaTest/herald/pkg/buildevents"
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/db"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/gitscm"
	"github.com/LambdaTest/herald/pkg/jwt"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/metrics"
	"github.com/LambdaTest/herald/pkg/opentelemetry"
	"github.com/LambdaTest/herald/pkg/problems"
	"github.com/LambdaTest/herald/pkg/redis"
	"github.com/LambdaTest/herald/pkg/resolver"
	"github.com/LambdaTest/herald/pkg/secrets/vault"
	"github.com/LambdaTest/herald/pkg/server"
	"github.com/LambdaTest/herald/pkg/service/gitstatus"
	"github.com/LambdaTest/herald/pkg/settings"
	"github.com/LambdaTest/herald/pkg/statuscache"
	"github.com/LambdaTest/herald/pkg/statusqueue"
	"github.com/LambdaTest/herald/pkg/statusupdater"
	"github.com/LambdaTest/herald/pkg/store/statusreport"
	"github.com/LambdaTest/herald/pkg/token"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:     "herald",
		Long:    `herald publishes the state of CI builds as commit statuses on the git SCM provider.`,
		Version: constants.BinaryVersion,
		RunE:    run,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)

	return &rootCmd
}

// nolint:funlen,gocyclo
func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		fmt.Printf("Failed to load config: %v", err)
		return err
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, "herald.log")
	}

	// You can also use logrus implementation
	// by using lumber.InstanceLogrusLogger
	logger, err := lumber.NewLogger(&cfg.LogConfig, cfg.Verbose, lumber.InstanceZapLogger)
	if err != nil {
		log.Printf("could not instantiate logger %s", err.Error())
		return err
	}
	database, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Errorf("failed to create database connection %v", err)
		return err
	}
	defer database.Close()

	// create a context that we can cancel
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize tracer
	if cfg.Tracing.OtelEndpoint != "" {
		tracerCleanup := opentelemetry.InitTracer(ctx, cfg, logger)
		defer func() {
			if tracerErr := tracerCleanup(context.Background()); tracerErr != nil {
				logger.Errorf("Failed to cleanup the tracer %v", tracerErr)
			}
		}()
	}

	redisDB, err := redis.New(ctx, cfg, logger)
	if err != nil {
		logger.Errorf("failed to create redis database connection %v", err)
		return err
	}

	var vaultStore core.Vault
	if cfg.Vault.Address != "" {
		if vaultStore, err = vault.New(cfg, logger); err != nil {
			logger.Errorf("could not instantiate vault client %v", err)
			return err
		}
	}

	internalJWT, err := jwt.New(cfg, logger)
	if err != nil {
		logger.Errorf("could not instantiate internal jwt authenticator %v", err)
		return err
	}

	m := metrics.New(nil)
	scmProvider := gitscm.New(logger)
	tokenHandler := token.New(cfg, vaultStore, logger)
	reportStore := statusreport.New(database, logger)
	problemStore := problems.New(redisDB, logger)
	gitStatusService := gitstatus.New(cfg,
		scmProvider,
		tokenHandler,
		statuscache.New(redisDB, logger),
		reportStore,
		problemStore,
		m,
		logger)

	consumers := make([]core.QueueConsumer, 0, 2)
	var scheduler core.StatusScheduler = gitStatusService
	if cfg.Delivery.Mode == constants.DeliveryModeQueue {
		producer := statusqueue.NewProducer(cfg, logger)
		defer producer.Close()
		scheduler = producer
		consumers = append(consumers, statusqueue.NewConsumer(cfg, gitStatusService, logger))
	}

	updater := statusupdater.New(cfg, scheduler, logger)
	registry, err := settings.New(cfg.Publishers, updater, resolver.New(), logger)
	if err != nil {
		logger.Errorf("invalid commit status publisher settings %v", err)
		return err
	}
	dispatcher := buildevents.New(registry, problemStore, m, logger)
	if cfg.Kafka.Brokers != "" && cfg.Kafka.BuildEventsConfig.Topic != "" {
		consumers = append(consumers, buildevents.NewConsumer(cfg, dispatcher, logger))
	}

	// create child context so as to close kafka consumers on SIGTERM/SIGINT
	// and fail health API.
	childCtx, childCancel := context.WithCancel(ctx)
	defer childCancel()
	routers := api.New(childCtx,
		cfg,
		internalJWT,
		dispatcher,
		problemStore,
		reportStore,
		logger,
		health.RedisCheck(redisDB),
		health.DBCheck(database))

	g := new(errgroup.Group)
	// setup http server
	g.Go(func() error {
		return server.ListenAndServe(ctx, &routers, cfg, logger)
	})
	for _, consumer := range consumers {
		consumer := consumer
		g.Go(func() error {
			consumer.Run(childCtx)
			return nil
		})
	}

	// listen for C-c
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	// create channel to mark status of the goroutines
	// this is required to brutally kill application in case of
	// timeout
	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		logger.Debugf("main: all goroutines have finished.")
		close(done)
	}()

	select {
	case <-c:
		logger.Debugf("main: received close signal - attempting graceful shutdown ....")
	case err := <-done:
		// the http server exits early only on failure
		logger.Errorf("main: exited before receiving a close signal: %v", err)
		return err
	}
	childCancel()
	// add some delay so as to allow the queue consumers to commit their offsets
	time.Sleep(cfg.ShutDownDelay)

	// tell the goroutines to stop
	logger.Debugf("main: telling all goroutines to stop")
	cancel()
	select {
	case err := <-done:
		logger.Debugf("Go routines exited within timeout")
		return err
	case <-time.After(cfg.GracefulTimeout):
		logger.Errorf("Graceful timeout exceeded. Brutally killing the application")
		return errs.ErrTimeoutExceeded
	}
}
