package usecases

import "mindtracker/internal/models"

const (
	HappyThreshold = 0.05
	SadThreshold   = -0.05
)

// ClassifyMood maps a compound sentiment score to a mood.
// Every code path that derives a mood from text goes through here.
func ClassifyMood(compound float64) models.Mood {
	switch {
	case compound >= HappyThreshold:
		return models.MoodHappy
	case compound <= SadThreshold:
		return models.MoodSad
	default:
		return models.MoodNeutral
	}
}
