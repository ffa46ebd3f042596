package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mindtracker/internal/ai"
	"mindtracker/internal/config"
	"mindtracker/internal/handlers"
	"mindtracker/internal/logging"
	"mindtracker/internal/metrics"
	"mindtracker/internal/sentiment"
	"mindtracker/internal/service"
	"mindtracker/internal/storage"
	"mindtracker/internal/storage/memory"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	entries  service.EntryStore
	prompts  service.PromptStore
	feedback service.FeedbackStore
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger settings come from the same config, so report on stderr and stop
		os.Stderr.WriteString("mindtracker: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		os.Stderr.WriteString("mindtracker: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("unable to open storage", zap.Error(err))
	}
	defer st.close()

	m := metrics.New()
	promptClient := ai.NewPromptClient(ai.Config{
		APIKey:             cfg.OpenAIKey,
		Model:              cfg.OpenAIModel,
		BaseURL:            cfg.OpenAIBaseURL,
		Timeout:            cfg.PromptTimeout,
		BreakerMaxFailures: uint32(cfg.BreakerMaxFailures),
		BreakerCooldown:    cfg.BreakerCooldown,
	}, logger)

	journal := service.NewJournal(sentiment.NewVader(), st.entries, m, logger)
	prompts := service.NewPrompts(promptClient, st.prompts, st.feedback, m, logger)

	router := handlers.NewRouter(
		handlers.NewJournalHandler(journal, logger),
		handlers.NewPromptHandler(prompts, logger),
		handlers.RouterConfig{
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			PromptRateLimit:    cfg.PromptRateLimit,
			GeneratorState:     promptClient.State,
			Metrics:            m,
			Logger:             logger,
		},
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("mindtracker is running",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("storage", cfg.StorageDriver),
		zap.String("model", cfg.OpenAIModel))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (stores, error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return stores{entries: store, prompts: store, feedback: store, close: func() {}}, nil
	}

	pool, err := storage.Connect(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return stores{}, err
	}
	return stores{
		entries:  storage.NewJournalStorage(pool),
		prompts:  storage.NewPromptStorage(pool),
		feedback: storage.NewFeedbackStorage(pool),
		close:    pool.Close,
	}, nil
}
