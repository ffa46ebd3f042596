package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mindtracker/internal/models"
)

type JournalStorage struct {
	pool *pgxpool.Pool
}

func NewJournalStorage(pool *pgxpool.Pool) *JournalStorage {
	return &JournalStorage{
		pool: pool,
	}
}

// CreateEntry inserts the entry and fills in its ID. A zero Timestamp is set to now.
func (js *JournalStorage) CreateEntry(ctx context.Context, entry *models.Entry) error {
	op := "storage.JournalStorage.CreateEntry"

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	sqlQuery := `
	INSERT INTO journal_entries
	(text, mood, neg, neu, pos, compound, timestamp)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id;
	`

	err := js.pool.QueryRow(
		ctx,
		sqlQuery,
		entry.Text,
		string(entry.Mood),
		entry.Neg,
		entry.Neu,
		entry.Pos,
		entry.Compound,
		entry.Timestamp,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("%s: failed to create entry: %w", op, err)
	}

	return nil
}

// GetEntries returns the full history, oldest first.
func (js *JournalStorage) GetEntries(ctx context.Context) ([]models.Entry, error) {
	op := "storage.JournalStorage.GetEntries"

	sqlQuery := `
	SELECT id, text, mood, neg, neu, pos, compound, timestamp
	FROM journal_entries
	ORDER BY timestamp ASC, id ASC;
	`

	rows, err := js.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get entries: %w", op, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var entry models.Entry
		var mood string

		err := rows.Scan(
			&entry.ID,
			&entry.Text,
			&mood,
			&entry.Neg,
			&entry.Neu,
			&entry.Pos,
			&entry.Compound,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan entry: %w", op, err)
		}

		entry.Mood = models.Mood(mood)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
