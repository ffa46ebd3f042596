package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mindtracker/internal/metrics"
	"mindtracker/internal/models"
	"mindtracker/internal/storage"
	"mindtracker/internal/usecases"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = storage.ErrNotFound

// Scorer is the sentiment boundary. Score must not fail on empty text.
type Scorer interface {
	Score(text string) models.Scores
}

type EntryStore interface {
	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntries(ctx context.Context) ([]models.Entry, error)
}

// MoodResult is a mood classification together with the scores it was derived from.
type MoodResult struct {
	Mood models.Mood `json:"mood"`
	models.Scores
}

// Journal scores, classifies and stores journal entries.
type Journal struct {
	scorer  Scorer
	entries EntryStore
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewJournal(scorer Scorer, entries EntryStore, m *metrics.Metrics, logger *zap.Logger) *Journal {
	return &Journal{
		scorer:  scorer,
		entries: entries,
		metrics: m,
		logger:  logger,
	}
}

func (j *Journal) Sentiment(text string) models.Scores {
	return j.scorer.Score(text)
}

func (j *Journal) Mood(text string) MoodResult {
	scores := j.scorer.Score(text)
	return MoodResult{
		Mood:   usecases.ClassifyMood(scores.Compound),
		Scores: scores,
	}
}

// CreateEntry scores text, classifies it and persists the result with a store-assigned timestamp.
func (j *Journal) CreateEntry(ctx context.Context, text string) (models.Entry, error) {
	return j.createEntry(ctx, models.Entry{Text: text})
}

// ImportEntry is CreateEntry with a caller-chosen timestamp, used when backfilling history.
func (j *Journal) ImportEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	return j.createEntry(ctx, models.Entry{Text: entry.Text, Timestamp: entry.Timestamp})
}

func (j *Journal) createEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	op := "service.Journal.CreateEntry"

	mood := j.Mood(entry.Text)
	entry.Mood = mood.Mood
	entry.SetScores(mood.Scores)

	if err := j.entries.CreateEntry(ctx, &entry); err != nil {
		return models.Entry{}, fmt.Errorf("%s: %w", op, err)
	}

	j.metrics.ObserveEntry(entry.Mood)
	j.logger.Debug("journal entry stored",
		zap.Int64("id", entry.ID),
		zap.String("mood", string(entry.Mood)),
		zap.Float64("compound", entry.Compound))

	return entry, nil
}

func (j *Journal) ListEntries(ctx context.Context) ([]models.Entry, error) {
	op := "service.Journal.ListEntries"

	entries, err := j.entries.GetEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

func (j *Journal) Recommend(mood string, habits []string) []string {
	return usecases.Recommend(mood, habits)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
