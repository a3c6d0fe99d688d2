package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daycast/daycast/app/api"
	"github.com/daycast/daycast/app/catalog"
	"github.com/daycast/daycast/app/cfg"
	"github.com/daycast/daycast/app/database"
	"github.com/daycast/daycast/app/extractor"
	"github.com/daycast/daycast/app/generation"
	"github.com/daycast/daycast/app/uploads"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	opts, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if opts == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if opts.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	log.Printf("Starting DayCast server (version %s)...", opts.Version)

	// Database connection
	log.Printf("Opening database at %s...", opts.DBPath)
	db, err := database.NewConnection(opts.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Printf("Database schema at version %d (dirty: %t)", version, dirty)

	// Product catalog
	log.Printf("Loading product catalog from %s...", opts.ProductFile)
	cat, err := catalog.NewLoader(opts.ProductFile).Load()
	if err != nil {
		log.Fatal("Failed to load product catalog: ", err)
	}
	log.Printf("Loaded %d channels, %d styles, %d languages", len(cat.Channels), len(cat.Styles), len(cat.Languages))

	// Repositories
	itemRepo := database.NewInputItemRepository(db)
	genRepo := database.NewGenerationRepository(db)
	settingsRepo := database.NewSettingsRepository(db)
	postRepo := database.NewPublishedPostRepository(db)
	userRepo := database.NewUserRepository(db)

	// With auth disabled every request maps to one shared client
	if opts.AuthMode == "none" {
		if err := userRepo.EnsureClient(api.SharedClientID); err != nil {
			log.Fatal("Failed to ensure shared client: ", err)
		}
		log.Println("Authentication disabled, using shared personal client")
	}

	// Core generation pipeline
	storage := uploads.NewStorage(opts.UploadsDir)
	provider := generation.NewOpenAIProvider(opts.OpenAIAPIKey, opts.OpenAIBaseUrl)
	service := generation.NewService(cat, provider, storage)
	orchestrator := generation.NewOrchestrator(cat, service, itemRepo, genRepo, settingsRepo)

	if opts.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, generation requests will fail")
	}

	// HTTP server
	log.Println("Initializing HTTP server...")
	handler := api.NewHandler(cat, orchestrator, itemRepo, genRepo, settingsRepo,
		postRepo, userRepo, extractor.NewExtractor(), storage, db)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:        ":" + opts.Port,
		Handler:     server,
		ReadTimeout: 30 * time.Second,
		// Generation requests may retry the provider several times, each with
		// its own timeout, so the write deadline has to cover the worst case.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", opts.Port)
		log.Printf("  API:    http://localhost:%s/api/v1", opts.Port)
		log.Printf("  Public: http://localhost:%s/api/v1/public/posts", opts.Port)
		log.Printf("  RSS:    http://localhost:%s/api/v1/public/rss", opts.Port)
		log.Printf("  Health: http://localhost:%s/health", opts.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("DayCast server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("DayCast server shutdown complete")
}
