package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"mindtracker/internal/metrics"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	// PromptRateLimit is requests per minute per client IP on POST /prompt; 0 disables the limit.
	PromptRateLimit int
	// GeneratorState, when set, is reported by /health as the prompt model's breaker state.
	GeneratorState func() string
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
}

func NewRouter(journal *JournalHandler, prompts *PromptHandler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(cfg.Metrics.Middleware)

	r.Post("/sentiment", journal.HandleSentiment)
	r.Post("/mood", journal.HandleMood)
	r.Post("/entry", journal.HandleCreateEntry)
	r.Get("/entries", journal.HandleGetEntries)
	r.Post("/recommend", journal.HandleRecommend)

	r.With(promptLimiter(cfg.PromptRateLimit)).Post("/prompt", prompts.HandlePrompt)
	r.Get("/prompt-history", prompts.HandlePromptHistory)
	r.Post("/feedback", prompts.HandleFeedback)
	r.Get("/last-prompt", prompts.HandleLastPrompt)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		health := map[string]string{"status": "ok"}
		if cfg.GeneratorState != nil {
			health["generator"] = cfg.GeneratorState()
		}
		writeJSON(w, http.StatusOK, health, logger, "handlers.health")
	})
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	return r
}

func promptLimiter(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.LimitByIP(perMinute, time.Minute)
}

// requestLogger writes one line per request with the chi request id.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
