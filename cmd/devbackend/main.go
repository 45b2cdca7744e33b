// Command devbackend serves the gym backend contract from MongoDB so the
// booking engine can be run locally.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymdesk/config"
	"gymdesk/database"
	clientRepo "gymdesk/database/repository/client"
	slotRepo "gymdesk/database/repository/slot"
	"gymdesk/handlers"
	"gymdesk/middleware"
	"gymdesk/routes"
	"gymdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger().Named("devbackend")
	defer logger.Sync()

	database.InitDB()

	slots := slotRepo.NewMongoSlotRepo()
	clients := clientRepo.NewMongoClientRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := slots.EnsureIndexes(ctx); err != nil {
		logger.Fatal("devbackend: schedule indexes", zap.Error(err))
	}
	if err := clients.EnsureIndexes(ctx); err != nil {
		logger.Fatal("devbackend: client indexes", zap.Error(err))
	}
	if config.AppConfig.DevBackendSeed {
		if err := seed(ctx, slots, clients, logger); err != nil {
			logger.Fatal("devbackend: seeding failed", zap.Error(err))
		}
	}
	cancel()

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterBackendRoutes(router, handlers.NewBackendHandler(slots, clients))

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.DevBackendPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting development backend on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("devbackend: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("devbackend: server forced to shutdown: %v", err)
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Warn("devbackend: closing MongoDB", zap.Error(err))
	}
	logger.Sugar().Info("devbackend: stopped")
}
