package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redmango/internal/config"
	"redmango/internal/database"
	"redmango/internal/handler"
	"redmango/internal/payment"
	"redmango/internal/repository"
	"redmango/internal/router"
	"redmango/internal/service"
	"redmango/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting redmango API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool and apply migrations
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize image store: S3-backed when enabled, local disk otherwise
	var imageStore storage.ImageStore
	if cfg.Storage.S3Enabled {
		imageStore, err = storage.NewS3Store(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 image store, falling back to local disk")
			imageStore = storage.NewDiskStore(cfg.Storage.ContentRoot, logger)
		}
	} else {
		imageStore = storage.NewDiskStore(cfg.Storage.ContentRoot, logger)
		logger.Info().
			Str("content_root", cfg.Storage.ContentRoot).
			Msg("using local disk for image assets (S3 disabled)")
	}

	// Initialize repositories
	menuItemRepo := repository.NewMenuItemRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)

	// Initialize payment gateway client
	gateway := payment.NewRazorpayClient(cfg.Razorpay, logger)

	// Initialize services
	menuItemService := service.NewMenuItemService(menuItemRepo, imageStore, logger)
	checkoutService, err := service.NewCheckoutService(cartRepo, gateway, cfg.Razorpay.Currency, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize checkout service: %w", err)
	}

	// Initialize HTTP handlers
	menuItemHandler := handler.NewMenuItemHandler(menuItemService, logger)
	paymentHandler := handler.NewPaymentHandler(checkoutService, logger)

	// Initialize router
	mux := router.New(menuItemHandler, paymentHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
