package api

import (
	"context"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/api/events"
	"github.com/LambdaTest/herald/pkg/api/health"
	"github.com/LambdaTest/herald/pkg/api/middleware"
	"github.com/LambdaTest/herald/pkg/api/problems"
	"github.com/LambdaTest/herald/pkg/api/statuses"
	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Router represents the routes for the http server.
type Router struct {
	cfg          *config.Config
	signalCtx    context.Context
	internalJWT  core.Session
	dispatcher   core.EventDispatcher
	problemStore core.PublisherProblems
	reportStore  core.StatusReportStore
	healthChecks []health.Check
	logger       lumber.Logger
}

// New returns a New Router
func New(
	signalCtx context.Context,
	cfg *config.Config,
	internalJWT core.Session,
	dispatcher core.EventDispatcher,
	problemStore core.PublisherProblems,
	reportStore core.StatusReportStore,
	logger lumber.Logger,
	healthChecks ...health.Check) Router {
	return Router{
		cfg:          cfg,
		signalCtx:    signalCtx,
		internalJWT:  internalJWT,
		dispatcher:   dispatcher,
		problemStore: problemStore,
		reportStore:  reportStore,
		healthChecks: healthChecks,
		logger:       logger,
	}
}

// Handler function will perform all route operations
func (r *Router) Handler() *gin.Engine {
	r.logger.Infof("Setting up routes")
	router := gin.New()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := configureValidator(v); err != nil {
			r.logger.Fatalf("failed to configure validator %v", err)
		}
	}
	// skip /health API from logs as will be required in probes
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/health", "/metrics"))
	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = constants.CorsAllowedOrigins
	if r.cfg.FrontendURL != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, r.cfg.FrontendURL)
	}
	corsConfig.AddAllowHeaders("authorization", "cache-control", "pragma")
	router.Use(cors.New(corsConfig))
	router.Use(otelgin.Middleware(constants.ServiceName))
	if r.cfg.Env == constants.Dev || r.cfg.Verbose {
		pprof.Register(router)
	}

	router.GET("/health", health.Handler(r.signalCtx, r.logger, r.healthChecks...))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/v1")
	v1.POST("/events",
		middleware.HandleJWTVerificationInternal(r.internalJWT, r.logger),
		events.HandleCreate(r.dispatcher, r.logger))
	v1.GET("/builds/:buildID/problems", problems.HandleList(r.problemStore, r.logger))
	v1.GET("/statuses/*path", statuses.HandleList(r.reportStore, r.logger))

	return router
}
