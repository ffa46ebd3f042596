package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mindtracker/internal/ai"
	"mindtracker/internal/metrics"
	"mindtracker/internal/models"
	"mindtracker/internal/usecases"
)

// Generator makes a single attempt at a model-written prompt. It reports failure in the result.
type Generator interface {
	Generate(ctx context.Context, mood string) ai.Generation
}

type PromptStore interface {
	CreatePrompt(ctx context.Context, prompt *models.Prompt) error
	GetPrompts(ctx context.Context) ([]models.Prompt, error)
	GetLastPrompt(ctx context.Context) (models.Prompt, error)
}

type FeedbackStore interface {
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
}

// Prompts serves journaling prompts and records feedback on them.
type Prompts struct {
	generator Generator
	prompts   PromptStore
	feedback  FeedbackStore
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewPrompts(generator Generator, prompts PromptStore, feedback FeedbackStore, m *metrics.Metrics, logger *zap.Logger) *Prompts {
	return &Prompts{
		generator: generator,
		prompts:   prompts,
		feedback:  feedback,
		metrics:   m,
		logger:    logger,
	}
}

// GeneratePrompt asks the model once and falls back to the static table on any failure.
// Only a storage failure is returned as an error.
func (p *Prompts) GeneratePrompt(ctx context.Context, mood string) (models.Prompt, error) {
	op := "service.Prompts.GeneratePrompt"

	source := models.PromptSourceModel
	gen := p.generator.Generate(ctx, mood)
	text := gen.Text
	if !gen.OK() {
		source = models.PromptSourceFallback
		text = usecases.FallbackPrompt(mood)
		p.logger.Warn("using fallback prompt",
			zap.String("mood", mood),
			zap.NamedError("reason", gen.Err))
	}

	prompt := models.Prompt{Text: text, Mood: mood}
	if err := p.prompts.CreatePrompt(ctx, &prompt); err != nil {
		return models.Prompt{}, fmt.Errorf("%s: %w", op, err)
	}

	p.metrics.ObservePrompt(source)
	p.logger.Info("prompt served",
		zap.Int64("prompt_id", prompt.ID),
		zap.String("mood", mood),
		zap.String("source", string(source)))

	return prompt, nil
}

func (p *Prompts) History(ctx context.Context) ([]models.Prompt, error) {
	op := "service.Prompts.History"

	prompts, err := p.prompts.GetPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	return prompts, nil
}

// LastPrompt returns ErrNotFound (check with IsNotFound) when no prompt exists yet.
func (p *Prompts) LastPrompt(ctx context.Context) (models.Prompt, error) {
	op := "service.Prompts.LastPrompt"

	prompt, err := p.prompts.GetLastPrompt(ctx)
	if err != nil {
		return models.Prompt{}, fmt.Errorf("%s: %w", op, err)
	}
	return prompt, nil
}

// RecordFeedback stores a vote. The prompt id is not checked.
func (p *Prompts) RecordFeedback(ctx context.Context, promptID int64, up bool) error {
	op := "service.Prompts.RecordFeedback"

	fb := models.Feedback{PromptID: promptID, Feedback: up}
	if err := p.feedback.CreateFeedback(ctx, &fb); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.metrics.ObserveFeedback(up)
	return nil
}
