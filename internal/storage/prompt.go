package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindtracker/internal/models"
)

type PromptStorage struct {
	pool *pgxpool.Pool
}

func NewPromptStorage(pool *pgxpool.Pool) *PromptStorage {
	return &PromptStorage{
		pool: pool,
	}
}

func (ps *PromptStorage) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	op := "storage.PromptStorage.CreatePrompt"

	if prompt.Timestamp.IsZero() {
		prompt.Timestamp = time.Now().UTC()
	}

	err := ps.pool.QueryRow(ctx,
		`INSERT INTO prompts (text, mood, timestamp) VALUES ($1, $2, $3) RETURNING id;`,
		prompt.Text,
		prompt.Mood,
		prompt.Timestamp,
	).Scan(&prompt.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to create prompt: %w", op, err)
	}

	return nil
}

// GetPrompts returns every prompt, newest first.
func (ps *PromptStorage) GetPrompts(ctx context.Context) ([]models.Prompt, error) {
	op := "storage.PromptStorage.GetPrompts"

	rows, err := ps.pool.Query(ctx, `
	SELECT id, text, mood, timestamp
	FROM prompts
	ORDER BY timestamp DESC, id DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get prompts: %w", op, err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		var p models.Prompt
		if err := rows.Scan(&p.ID, &p.Text, &p.Mood, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("%s: failed to scan prompt: %w", op, err)
		}
		prompts = append(prompts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return prompts, nil
}

// GetLastPrompt returns ErrNotFound when no prompt was ever stored.
func (ps *PromptStorage) GetLastPrompt(ctx context.Context) (models.Prompt, error) {
	op := "storage.PromptStorage.GetLastPrompt"

	var p models.Prompt
	err := ps.pool.QueryRow(ctx, `
	SELECT id, text, mood, timestamp
	FROM prompts
	ORDER BY timestamp DESC, id DESC
	LIMIT 1;
	`).Scan(&p.ID, &p.Text, &p.Mood, &p.Timestamp)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.Prompt{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return models.Prompt{}, fmt.Errorf("%s: failed to get last prompt: %w", op, err)
	}

	return p, nil
}
