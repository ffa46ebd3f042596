// Package sentiment wraps the VADER analyzer behind the four-score contract used by the journal.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"mindtracker/internal/models"
)

// Vader scores text with the VADER lexicon. Safe for concurrent use after construction.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score never fails. Blank text is fully neutral.
func (v *Vader) Score(text string) models.Scores {
	if strings.TrimSpace(text) == "" {
		return models.Scores{Neu: 1}
	}

	s := v.analyzer.PolarityScores(text)
	return models.Scores{
		Neg:      s.Negative,
		Neu:      s.Neutral,
		Pos:      s.Positive,
		Compound: s.Compound,
	}
}
