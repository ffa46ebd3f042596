package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"mindtracker/internal/usecases"
)

const (
	DefaultModel      = "gpt-3.5-turbo"
	DefaultTimeout    = 10 * time.Second
	promptMaxTokens   = 50
	promptTemperature = 0.8
)

var ErrEmptyCompletion = errors.New("model returned no usable text")

// Generation is the outcome of a single generation attempt.
// Err is set when the attempt failed and the caller should fall back.
type Generation struct {
	Text string
	Err  error
}

func (g Generation) OK() bool {
	return g.Err == nil && g.Text != ""
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration

	// consecutive failures before the breaker opens, and how long it stays open
	BreakerMaxFailures uint32
	BreakerCooldown    time.Duration
}

// PromptClient asks a chat-completion model for a journaling question.
type PromptClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[string]
	logger  *zap.Logger
}

func NewPromptClient(cfg Config, logger *zap.Logger) *PromptClient {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxFailures := cfg.BreakerMaxFailures
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "openai-prompt",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// caller cancellation is not an upstream failure; the prompt timeout is
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &PromptClient{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		breaker: breaker,
		logger:  logger,
	}
}

// Generate makes one bounded attempt. Failures come back inside the Generation, never as a panic or error return.
func (pc *PromptClient) Generate(ctx context.Context, mood string) Generation {
	op := "ai.PromptClient.Generate"

	if err := ctx.Err(); err != nil {
		return Generation{Err: fmt.Errorf("%s: %w", op, err)}
	}

	text, err := pc.breaker.Execute(func() (string, error) {
		return pc.complete(ctx, mood)
	})
	if err != nil {
		pc.logger.Warn("prompt generation failed",
			zap.String("op", op),
			zap.String("mood", mood),
			zap.Error(err))
		return Generation{Err: fmt.Errorf("%s: %w", op, err)}
	}

	return Generation{Text: text}
}

func (pc *PromptClient) complete(ctx context.Context, mood string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pc.timeout)
	defer cancel()

	resp, err := pc.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(pc.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(usecases.CoachInstruction),
			openai.UserMessage(usecases.PromptRequest(mood)),
		},
		MaxTokens:   openai.Int(promptMaxTokens),
		Temperature: openai.Float(promptTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response: %w", ErrEmptyCompletion)
	}

	text := usecases.CleanGeneratedPrompt(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}

// State reports the breaker state for /health.
func (pc *PromptClient) State() string {
	return pc.breaker.State().String()
}
