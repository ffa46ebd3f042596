package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"mindtracker/internal/ai"
	"mindtracker/internal/metrics"
	"mindtracker/internal/models"
	"mindtracker/internal/sentiment"
	"mindtracker/internal/storage/memory"
	"mindtracker/internal/usecases"
)

type stubScorer map[string]models.Scores

func (s stubScorer) Score(text string) models.Scores {
	if scores, ok := s[text]; ok {
		return scores
	}
	return models.Scores{Neu: 1}
}

type stubGenerator struct {
	gen   ai.Generation
	calls int
	moods []string
}

func (g *stubGenerator) Generate(_ context.Context, mood string) ai.Generation {
	g.calls++
	g.moods = append(g.moods, mood)
	return g.gen
}

type failingStore struct{ err error }

func (f failingStore) CreateEntry(context.Context, *models.Entry) error {
	return f.err
}

func (f failingStore) GetEntries(context.Context) ([]models.Entry, error) {
	return nil, f.err
}

func (f failingStore) CreatePrompt(context.Context, *models.Prompt) error {
	return f.err
}

func (f failingStore) GetPrompts(context.Context) ([]models.Prompt, error) {
	return nil, f.err
}

func (f failingStore) GetLastPrompt(context.Context) (models.Prompt, error) {
	return models.Prompt{}, f.err
}

func (f failingStore) CreateFeedback(context.Context, *models.Feedback) error {
	return f.err
}

func TestJournal_CreateEntryWithVader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	j := NewJournal(sentiment.NewVader(), store, metrics.New(), zap.NewNop())

	entry, err := j.CreateEntry(ctx, "I feel great today!")
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if entry.ID == 0 || entry.Timestamp.IsZero() {
		t.Fatalf("id/timestamp not assigned: %+v", entry)
	}
	if entry.Mood != usecases.ClassifyMood(entry.Compound) {
		t.Fatalf("mood %q inconsistent with compound %v", entry.Mood, entry.Compound)
	}

	list, err := j.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(list) != 1 || list[0].ID != entry.ID || list[0].Text != "I feel great today!" {
		t.Fatalf("list=%+v", list)
	}
}

func TestJournal_MoodUsesClassifier(t *testing.T) {
	t.Parallel()

	scorer := stubScorer{
		"edge happy": {Pos: 0.2, Neu: 0.8, Compound: 0.05},
		"edge sad":   {Neg: 0.2, Neu: 0.8, Compound: -0.05},
		"flat":       {Neu: 1, Compound: 0.04},
	}
	j := NewJournal(scorer, memory.NewStore(), nil, zap.NewNop())

	cases := map[string]models.Mood{
		"edge happy": models.MoodHappy,
		"edge sad":   models.MoodSad,
		"flat":       models.MoodNeutral,
		"":           models.MoodNeutral,
	}
	for text, want := range cases {
		got := j.Mood(text)
		if got.Mood != want {
			t.Fatalf("Mood(%q)=%q want %q", text, got.Mood, want)
		}
		if got.Scores != scorer.Score(text) {
			t.Fatalf("Mood(%q) scores=%+v", text, got.Scores)
		}
	}
}

func TestJournal_EntriesOrderedAndImmutableMood(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scorer := stubScorer{
		"good": {Pos: 1, Compound: 0.8},
		"bad":  {Neg: 1, Compound: -0.8},
	}
	j := NewJournal(scorer, memory.NewStore(), nil, zap.NewNop())

	first, _ := j.CreateEntry(ctx, "good")
	second, _ := j.CreateEntry(ctx, "bad")

	list, err := j.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("order=%+v", list)
	}
	if list[0].Mood != models.MoodHappy || list[1].Mood != models.MoodSad {
		t.Fatalf("moods=%q,%q", list[0].Mood, list[1].Mood)
	}
	bad := list[1]
	if bad.Neg != 1 || bad.Neu != 0 || bad.Pos != 0 || bad.Compound != -0.8 {
		t.Fatalf("scores not stored on entry: %+v", bad)
	}
}

func TestJournal_ListEmpty(t *testing.T) {
	t.Parallel()

	j := NewJournal(stubScorer{}, memory.NewStore(), nil, zap.NewNop())
	list, err := j.ListEntries(context.Background())
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("list=%#v err=%v", list, err)
	}
}

func TestJournal_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	j := NewJournal(stubScorer{}, failingStore{err: boom}, nil, zap.NewNop())
	if _, err := j.CreateEntry(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestPrompts_ModelSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	gen := &stubGenerator{gen: ai.Generation{Text: "What made today feel light?"}}
	m := metrics.New()
	p := NewPrompts(gen, store, store, m, zap.NewNop())

	prompt, err := p.GeneratePrompt(ctx, "happy")
	if err != nil {
		t.Fatalf("GeneratePrompt: %v", err)
	}
	if prompt.Text != "What made today feel light?" || prompt.Mood != "happy" || prompt.ID == 0 {
		t.Fatalf("prompt=%+v", prompt)
	}
	if gen.calls != 1 {
		t.Fatalf("calls=%d", gen.calls)
	}
}

func TestPrompts_FallbackOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	gen := &stubGenerator{gen: ai.Generation{Err: errors.New("quota exceeded")}}
	p := NewPrompts(gen, store, store, nil, zap.NewNop())

	prompt, err := p.GeneratePrompt(ctx, "sad")
	if err != nil {
		t.Fatalf("GeneratePrompt: %v", err)
	}
	if prompt.Text != "What is one kind thing you can offer yourself right now?" {
		t.Fatalf("text=%q", prompt.Text)
	}

	last, err := p.LastPrompt(ctx)
	if err != nil {
		t.Fatalf("LastPrompt: %v", err)
	}
	if last.ID != prompt.ID || last.Mood != "sad" || last.Text != prompt.Text {
		t.Fatalf("persisted=%+v", last)
	}
}

func TestPrompts_FallbackUnknownMoodUsesDefault(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	gen := &stubGenerator{gen: ai.Generation{Err: errors.New("network down")}}
	p := NewPrompts(gen, store, store, nil, zap.NewNop())

	prompt, err := p.GeneratePrompt(context.Background(), "anxious")
	if err != nil {
		t.Fatalf("GeneratePrompt: %v", err)
	}
	if prompt.Text != usecases.DefaultPrompt || prompt.Mood != "anxious" {
		t.Fatalf("prompt=%+v", prompt)
	}
}

func TestPrompts_BlankGenerationFallsBack(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	p := NewPrompts(&stubGenerator{}, store, store, nil, zap.NewNop())

	prompt, err := p.GeneratePrompt(context.Background(), "neutral")
	if err != nil {
		t.Fatalf("GeneratePrompt: %v", err)
	}
	if prompt.Text != usecases.FallbackPrompt("neutral") {
		t.Fatalf("text=%q", prompt.Text)
	}
}

func TestPrompts_StorageFailureIsError(t *testing.T) {
	t.Parallel()

	boom := errors.New("db gone")
	gen := &stubGenerator{gen: ai.Generation{Text: "Q?"}}
	p := NewPrompts(gen, failingStore{err: boom}, failingStore{err: boom}, nil, zap.NewNop())

	if _, err := p.GeneratePrompt(context.Background(), "happy"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
	if err := p.RecordFeedback(context.Background(), 1, true); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestPrompts_HistoryNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	gen := &stubGenerator{gen: ai.Generation{Text: "Q?"}}
	p := NewPrompts(gen, store, store, nil, zap.NewNop())

	a, _ := p.GeneratePrompt(ctx, "happy")
	b, _ := p.GeneratePrompt(ctx, "sad")

	history, err := p.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].ID != b.ID || history[1].ID != a.ID {
		t.Fatalf("history=%+v", history)
	}
}

func TestPrompts_LastPromptEmptyIsNotFound(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	p := NewPrompts(&stubGenerator{}, store, store, nil, zap.NewNop())

	_, err := p.LastPrompt(context.Background())
	if !IsNotFound(err) {
		t.Fatalf("err=%v want not found", err)
	}
}

func TestPrompts_FeedbackWithoutPrompt(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	p := NewPrompts(&stubGenerator{}, store, store, nil, zap.NewNop())

	if err := p.RecordFeedback(context.Background(), 424242, true); err != nil {
		t.Fatalf("RecordFeedback: %v", err)
	}
	if err := p.RecordFeedback(context.Background(), 424242, false); err != nil {
		t.Fatalf("RecordFeedback: %v", err)
	}

	fb := store.Feedback()
	if len(fb) != 2 || fb[0].PromptID != 424242 || !fb[0].Feedback || fb[1].Feedback {
		t.Fatalf("feedback=%+v", fb)
	}
}
