package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/b2b-transaction-platform/internal/api"
	"github.com/b2b-transaction-platform/internal/api/service"
	"github.com/b2b-transaction-platform/internal/auth"
	"github.com/b2b-transaction-platform/internal/config"
	"github.com/b2b-transaction-platform/internal/data/postgres"
	"github.com/b2b-transaction-platform/internal/insight"
	"github.com/b2b-transaction-platform/internal/logger"
	"github.com/b2b-transaction-platform/internal/mail"
	"github.com/b2b-transaction-platform/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize database with app context (runs migrations)
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	transactionRepo := postgres.NewTransactionRepository(log, postgresDB)
	userRepo := postgres.NewUserRepository(log, postgresDB)

	// Initialize collaborators
	tokens := auth.NewTokenManager(cfg.JWT)
	sender := mail.NewLogSender(log, cfg.Mail.FromAddress)

	var chatClient insight.ChatClient
	if openAIClient := insight.NewOpenAIClient(cfg.OpenAI); openAIClient != nil {
		chatClient = openAIClient
	} else {
		log.Warn("No OpenAI API key configured, insight generation will use the fallback message")
	}
	insights := insight.NewGenerator(log, chatClient)

	// Initialize services
	authService := service.NewAuthService(log, userRepo, tokens, sender, cfg.JWT.ResetTokenTTL)
	transactionService := service.NewTransactionService(log, transactionRepo, userRepo, insights)

	// Initialize REST server
	server := api.NewServer(log, cfg, tokens, authService, transactionService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	postgresDB.Close()

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
