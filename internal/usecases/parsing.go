package usecases

import (
	"fmt"
	"strings"
)

const (
	CoachInstruction = "You are a gentle journaling coach in a fantasy forest. " +
		"Given the user's mood, suggest a single open-ended journaling prompt."

	DefaultPrompt = "What is on your mind right now that you would like to explore?"
)

var fallbackPrompts = map[string]string{
	"happy":   "What recent success are you most proud of, and why?",
	"neutral": "What's something small you noticed today that you might explore further?",
	"sad":     "What is one kind thing you can offer yourself right now?",
}

// labels the model sometimes puts in front of the question
var promptLabels = []string{"Journaling prompt:", "Prompt:", "Question:"}

// PromptRequest builds the user message sent to the model.
func PromptRequest(mood string) string {
	return fmt.Sprintf("My mood today is: %s. Give me one thoughtful journaling question.", mood)
}

// FallbackPrompt returns the static question for mood, or DefaultPrompt when the mood is not one we know.
func FallbackPrompt(mood string) string {
	if text, ok := fallbackPrompts[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return text
	}
	return DefaultPrompt
}

// CleanGeneratedPrompt strips whitespace, a leading label and wrapping quotes from model output.
// An empty result means the output is unusable.
func CleanGeneratedPrompt(response string) string {
	text := strings.TrimSpace(response)

	for _, label := range promptLabels {
		if len(text) >= len(label) && strings.EqualFold(text[:len(label)], label) {
			text = strings.TrimSpace(text[len(label):])
			break
		}
	}

	for _, quote := range []string{`"`, "“", "'"} {
		closing := quote
		if quote == "“" {
			closing = "”"
		}
		if len(text) > len(quote)+len(closing) && strings.HasPrefix(text, quote) && strings.HasSuffix(text, closing) {
			text = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, quote), closing))
			break
		}
	}

	return text
}
