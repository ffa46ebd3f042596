package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mindtracker/internal/models"
)

type FeedbackStorage struct {
	pool *pgxpool.Pool
}

func NewFeedbackStorage(pool *pgxpool.Pool) *FeedbackStorage {
	return &FeedbackStorage{
		pool: pool,
	}
}

// CreateFeedback does not check that the prompt exists.
func (fs *FeedbackStorage) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	op := "storage.FeedbackStorage.CreateFeedback"

	if feedback.Timestamp.IsZero() {
		feedback.Timestamp = time.Now().UTC()
	}

	err := fs.pool.QueryRow(ctx,
		`INSERT INTO prompt_feedback (prompt_id, feedback, timestamp) VALUES ($1, $2, $3) RETURNING id;`,
		feedback.PromptID,
		feedback.Feedback,
		feedback.Timestamp,
	).Scan(&feedback.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to create feedback: %w", op, err)
	}

	return nil
}
