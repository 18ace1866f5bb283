package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/config"
	"backoffice/database"
	"backoffice/routes"
	"backoffice/services"
	"backoffice/utils"
	"backoffice/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	setupLogger(cfg)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	defer database.Disconnect()

	if err := database.RunSeeders(db); err != nil {
		logrus.Warn("Seeding failed: ", err)
	}

	redisClient := config.InitRedis(cfg)
	defer redisClient.Close()

	gateway := newPushGateway(cfg)

	router, deps := routes.SetupRoutes(cfg, db, redisClient, gateway)

	scheduler := workers.NewSchedulerWorker(workers.SchedulerConfig{
		PollInterval: cfg.SchedulerPollInterval,
		BatchSize:    cfg.SchedulerBatchSize,
		WorkerCount:  cfg.DispatchWorkerCount,
	}, deps.Repos.Notification, deps.Services.Dispatch)
	scheduler.Start()
	defer scheduler.Stop()

	cleanup := workers.NewCleanupWorker(workers.CleanupConfig{
		Interval:      cfg.CleanupInterval,
		RetentionDays: cfg.RetentionDays,
	}, deps.Repos.Notification)
	cleanup.Start()
	defer cleanup.Stop()

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Info("Back-office server starting on port ", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatal("Server forced to shutdown: ", err)
	}

	logrus.Info("Server shutdown complete")
}

func setupLogger(cfg *config.Config) {
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// newPushGateway builds the FCM gateway, falling back to the mock when
// Firebase credentials are not configured.
func newPushGateway(cfg *config.Config) services.PushGateway {
	if cfg.FirebaseCredentials == "" {
		logrus.Warn("Firebase credentials not configured, using mock push gateway")
		return utils.NewMockPushGateway()
	}

	gateway, err := utils.NewFCMGateway(context.Background(), cfg.FirebaseCredentials)
	if err != nil {
		logrus.WithError(err).Warn("Failed to initialize FCM, using mock push gateway")
		return utils.NewMockPushGateway()
	}
	return gateway
}
