// Package memory is an in-process store with the same contracts as the Postgres storage.
// It backs STORAGE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mindtracker/internal/models"
	"mindtracker/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	entries  []models.Entry
	prompts  []models.Prompt
	feedback []models.Feedback
	lastID   int64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *Store) CreateEntry(_ context.Context, entry *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

// GetEntries returns entries oldest first.
func (s *Store) GetEntries(_ context.Context) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cloned := append([]models.Entry{}, s.entries...)
	sort.SliceStable(cloned, func(i, j int) bool {
		if cloned[i].Timestamp.Equal(cloned[j].Timestamp) {
			return cloned[i].ID < cloned[j].ID
		}
		return cloned[i].Timestamp.Before(cloned[j].Timestamp)
	})
	return cloned, nil
}

func (s *Store) CreatePrompt(_ context.Context, prompt *models.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompt.ID = s.nextID()
	if prompt.Timestamp.IsZero() {
		prompt.Timestamp = time.Now().UTC()
	}
	s.prompts = append(s.prompts, *prompt)
	return nil
}

// GetPrompts returns prompts newest first.
func (s *Store) GetPrompts(_ context.Context) ([]models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.promptsNewestFirst(), nil
}

func (s *Store) GetLastPrompt(_ context.Context) (models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prompts := s.promptsNewestFirst()
	if len(prompts) == 0 {
		return models.Prompt{}, fmt.Errorf("memory.Store.GetLastPrompt: %w", storage.ErrNotFound)
	}
	return prompts[0], nil
}

func (s *Store) promptsNewestFirst() []models.Prompt {
	cloned := append([]models.Prompt{}, s.prompts...)
	sort.SliceStable(cloned, func(i, j int) bool {
		if cloned[i].Timestamp.Equal(cloned[j].Timestamp) {
			return cloned[i].ID > cloned[j].ID
		}
		return cloned[i].Timestamp.After(cloned[j].Timestamp)
	})
	return cloned
}

func (s *Store) CreateFeedback(_ context.Context, feedback *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	feedback.ID = s.nextID()
	if feedback.Timestamp.IsZero() {
		feedback.Timestamp = time.Now().UTC()
	}
	s.feedback = append(s.feedback, *feedback)
	return nil
}

// Feedback returns a copy of all recorded feedback in insertion order.
func (s *Store) Feedback() []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Feedback{}, s.feedback...)
}
