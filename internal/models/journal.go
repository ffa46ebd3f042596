package models

import (
	"time"
)

// Entry is a scored journal entry. Entries are append-only.
type Entry struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Mood      Mood      `json:"mood" db:"mood"`
	Neg       float64   `json:"neg" db:"neg"`
	Neu       float64   `json:"neu" db:"neu"`
	Pos       float64   `json:"pos" db:"pos"`
	Compound  float64   `json:"compound" db:"compound"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// SetScores copies the four sentiment scores onto the entry.
func (e *Entry) SetScores(s Scores) {
	e.Neg = s.Neg
	e.Neu = s.Neu
	e.Pos = s.Pos
	e.Compound = s.Compound
}
