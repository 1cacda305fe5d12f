package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookline/config"
	"bookline/cron"
	"bookline/database/repository/bookings"
	"bookline/handlers"
	"bookline/routes"
	"bookline/services/dialog"
	"bookline/services/notification"
	"bookline/services/session"
	"bookline/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx := context.Background()
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute

	// Session store backend.
	var sessions session.Store
	switch config.AppConfig.SessionBackend {
	case "redis":
		sessions = session.NewRedisStore(utils.GetSessionCacheClient(), sessionTTL)
	default:
		memStore := session.NewMemoryStore(sessionTTL)
		cron.InitSessionSweeper(memStore)
		sessions = memStore
	}

	// Booking store backend.
	var bookingRepo bookings.Repository
	var err error
	switch config.AppConfig.StoreBackend {
	case "mongo":
		bookingRepo, err = bookings.NewMongoBookingRepo(ctx, config.AppConfig.DatabaseURL)
	default:
		bookingRepo, err = bookings.NewSheetsBookingRepo(ctx,
			config.AppConfig.GoogleCredentialsFile, config.AppConfig.SheetID)
	}
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize booking store: %v", err)
	}

	notifier := notification.NewSMTPNotificationService(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPass,
		config.AppConfig.EmailFrom,
	)

	dialogService := dialog.NewDialogService(sessions, bookingRepo, notifier)
	webhookHandler := handlers.NewWebhookHandler(dialogService, logger)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	routes.RegisterRoutes(router, webhookHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3000"
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
