package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"studio-chat/api"
	"studio-chat/auth"
	"studio-chat/domain"
	"studio-chat/moderation"
	"studio-chat/observability"
	"studio-chat/repositories"
	"studio-chat/runtime"
	"studio-chat/runtime/workers"
	"studio-chat/search"
	"studio-chat/services"
	"studio-chat/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer executes before the process
// exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage (BadgerDB + search index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	index, err := search.NewIndex(config.SearchIndexPath, log)
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		_ = index.Close()
	}()

	messageRepo, err := repositories.NewMessageRepository(db, log)
	if err != nil {
		return fmt.Errorf("message repository setup failed: %w", err)
	}
	defer messageRepo.Close()

	roomRepo, err := repositories.NewRoomRepository(db, log)
	if err != nil {
		return fmt.Errorf("room repository setup failed: %w", err)
	}
	defer roomRepo.Close()

	// 3. Moderation
	wordlist, err := runtime.LoadCensoredWords()
	if err != nil {
		return fmt.Errorf("wordlist loading failed: %w", err)
	}
	log.Info("Moderation wordlist loaded", "words", len(wordlist.Words), "languages", wordlist.Languages)

	moderator, err := moderation.NewModerator(wordlist.Words, config.ModerationCharReplacement)
	if err != nil {
		return fmt.Errorf("moderator setup failed: %w", err)
	}

	// 4. Routing core
	presenceChanges := make(chan domain.PresenceChange, config.PresenceBufferSize)
	registry := runtime.NewRegistry(presenceChanges, log)
	stats := observability.NewStats(log)
	router := runtime.NewRouter(registry, messageRepo, roomRepo, moderator, index, stats, log)

	// 5. Transport & API
	verifier := auth.NewVerifier(config.JWTSecret)
	wsServer := ws.NewServer(verifier, registry, router, config.origins(), config.ConnectionBufferSize, log)
	chatService := services.NewChatService(messageRepo, roomRepo, registry, index)
	handler := api.NewHandler(chatService, registry, stats, log)
	httpHandler := api.NewRouter(handler, wsServer, verifier, config.origins())

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Background workers
	sup := workers.NewSupervisor(log)
	sup.Add(
		workers.NewPresenceBroadcast(registry, presenceChanges, log),
		workers.NewBadgerGC(db, config.GCInterval, log),
	)
	go sup.Run(ctx)

	// 8. HTTP Server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 10. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
