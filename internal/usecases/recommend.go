package usecases

import "strings"

var moodRecommendations = map[string][]string{
	"happy": {
		"Share gratitude with a friend",
		"Try a new creative hobby",
		"Do 10 minutes of stretching",
	},
	"neutral": {
		"Take a 5-minute mindfulness break",
		"Drink a glass of water",
		"Go for a short walk",
	},
	"sad": {
		"Write down one thing you’re grateful for",
		"Do 5 minutes of deep breathing",
		"Call or text someone you trust",
	},
}

var defaultRecommendations = []string{
	"Track today’s habits",
	"Review yesterday’s journal",
}

// Recommend returns the suggestions for mood minus the excluded habits, in table order.
// Unknown and empty moods get the default list.
func Recommend(mood string, excluded []string) []string {
	recs, ok := moodRecommendations[strings.ToLower(mood)]
	if !ok {
		recs = defaultRecommendations
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, habit := range excluded {
		skip[habit] = struct{}{}
	}

	result := make([]string, 0, len(recs))
	for _, rec := range recs {
		if _, found := skip[rec]; found {
			continue
		}
		result = append(result, rec)
	}
	return result
}
