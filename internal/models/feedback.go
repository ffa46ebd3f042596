package models

import (
	"time"
)

type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	PromptID  int64     `json:"prompt_id" db:"prompt_id"`
	Feedback  bool      `json:"feedback" db:"feedback"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
