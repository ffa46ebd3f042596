package models

import (
	"time"
)

// Prompt is a journaling question. Mood is whatever the caller asked for.
type Prompt struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Mood      string    `json:"mood" db:"mood"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

type PromptSource string

const (
	PromptSourceModel    PromptSource = "model"
	PromptSourceFallback PromptSource = "fallback"
)
