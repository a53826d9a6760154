package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formrehberim.com/form-guide/internal/api"
	"formrehberim.com/form-guide/internal/config"
	"formrehberim.com/form-guide/internal/core"
	"formrehberim.com/form-guide/internal/logger"
	"formrehberim.com/form-guide/internal/store"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, slog.LevelInfo)))

	if err := config.LoadConfig(); err != nil {
		slog.Error("failed to load configuration", logger.Err(err))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.ParseLevel(config.AppConfig.LogLevel))))

	// Command line flag for offline index building
	ingestFlag := flag.Bool("ingest", false, "Embed the exercise docs into the similarity index and exit")
	flag.Parse()

	// The SQLite artifact holds both the conversation log and the
	// precomputed exercise-chunk index.
	dbStore, err := store.NewSQLiteStore(config.AppConfig.IndexPath)
	if err != nil {
		slog.Error("failed to initialize store", logger.Err(err))
		os.Exit(1)
	}
	defer dbStore.Close()

	// A missing credential leaves the pipeline uninitialized rather than
	// aborting startup; every turn then gets the not-ready answer.
	var llmService *core.LLMService
	if config.AppConfig.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set, serving with an uninitialized pipeline")
	} else {
		llmService, err = core.NewLLMService(context.Background(), config.AppConfig.GeminiAPIKey)
		if err != nil {
			slog.Warn("failed to create GenAI client, serving with an uninitialized pipeline", logger.Err(err))
			llmService = nil
		}
	}
	defer llmService.Close()

	if *ingestFlag {
		if llmService == nil {
			slog.Error("ingestion requires GEMINI_API_KEY")
			os.Exit(1)
		}
		slog.Info("starting exercise docs ingestion", "dir", config.AppConfig.DocsDir)
		embedder := func(text string) ([]float32, error) {
			return llmService.GetEmbedding(context.Background(), text)
		}
		numIngested, err := dbStore.IngestDocsDir(config.AppConfig.DocsDir, embedder)
		if err != nil {
			slog.Error("ingestion failed", logger.Err(err))
			os.Exit(1)
		}
		slog.Info("ingestion complete, exiting", "chunks", numIngested)
		return
	}

	var pipeline *core.Pipeline
	if llmService != nil {
		retriever, err := core.NewRetriever(dbStore, llmService)
		if err != nil {
			slog.Warn("exercise index unavailable, serving with an uninitialized pipeline", logger.Err(err))
		} else {
			pipeline = core.NewPipeline(llmService, retriever)
		}
	}
	if pipeline.Ready() {
		slog.Info("turn pipeline ready")
	}

	chatService := core.NewChatService(dbStore, pipeline, config.AppConfig.LLMTimeout, config.AppConfig.DefaultLang)

	apiHandler := api.NewAPIHandler(chatService, config.AppConfig.DocsDir)
	router := api.NewRouter(apiHandler)

	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: config.AppConfig.LLMTimeout + 30*time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		slog.Info("starting server", "addr", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("could not start listener", "addr", serverAddr, logger.Err(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", logger.Err(err))
		os.Exit(1)
	}

	slog.Info("server exiting gracefully")
}
