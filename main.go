package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymdesk/config"
	"gymdesk/handlers"
	"gymdesk/middleware"
	"gymdesk/routes"
	"gymdesk/services/backend"
	"gymdesk/services/directory"
	"gymdesk/services/finder"
	"gymdesk/services/schedule"
	"gymdesk/services/scheduling"
	"gymdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	backendClient := backend.NewClient(config.AppConfig.BackendURL, config.AppConfig.BackendToken,
		config.AppConfig.BackendTimeout(), logger.Named("backend"))

	// Redis is an optional second level under the in-memory client cache.
	var recordStore directory.RecordStore
	redisClient := utils.GetDirectoryCacheClient()
	if redisClient != nil {
		recordStore = directory.NewRedisRecordStore(redisClient, config.AppConfig.DirectoryCacheTTL())
		defer redisClient.Close()
	}

	clientDirectory := directory.NewClientDirectory(backendClient, recordStore, logger.Named("directory"))
	clientFinder := finder.NewAssignableClientFinder(backendClient, logger.Named("finder"))
	controller := scheduling.NewController(backendClient, schedule.NewStore(), clientDirectory, clientFinder, logger.Named("scheduling"))

	startCtx, cancelStart := context.WithTimeout(context.Background(), config.AppConfig.BackendTimeout())
	if _, err := controller.LoadSchedule(startCtx); err != nil {
		logger.Warn("main: initial schedule load failed, serving an empty week until reload", zap.Error(err))
	}
	cancelStart()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 60*time.Second, backendClient, redisClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	handlerBundle := handlers.NewHandlerBundle(handlers.NewScheduleHandler(controller))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	controller.ResetSession()

	logger.Sugar().Info("main: server stopped gracefully")
}
