// Command mindtracker-seed fills the journal with one sample entry per day over a date range.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mindtracker/internal/logging"
	"mindtracker/internal/models"
	"mindtracker/internal/sentiment"
	"mindtracker/internal/service"
	"mindtracker/internal/storage"
)

var samples = []string{
	"I had a wonderful walk in the park today.",
	"Work was stressful, but I managed to get through.",
	"I feel grateful for my friends and family.",
	"I’m a bit tired and overwhelmed.",
	"Today was a neutral day—nothing special happened.",
	"I accomplished a lot and feel proud!",
	"I’m feeling anxious about next week’s presentation.",
	"I had a relaxing evening reading a good book.",
	"I feel hopeful about the future.",
	"I had an argument, and now I feel sad.",
}

type entryImporter interface {
	ImportEntry(ctx context.Context, entry models.Entry) (models.Entry, error)
}

func main() {
	_ = godotenv.Load()

	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "mindtracker-seed:", err)
		os.Exit(2)
	}

	logger, err := logging.New("info", logging.FormatConsole)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mindtracker-seed:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := storage.Connect(ctx, cfg.DSN, logger)
	if err != nil {
		logger.Fatal("unable to connect to db", zap.Error(err))
	}
	defer pool.Close()

	journal := service.NewJournal(sentiment.NewVader(), storage.NewJournalStorage(pool), nil, logger)

	n, err := seedEntries(ctx, journal, cfg.From, cfg.To, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		logger.Error("seeding stopped", zap.Int("inserted", n), zap.Error(err))
		return
	}

	logger.Info("seeded entries",
		zap.Int("count", n),
		zap.String("from", cfg.From.Format(dateLayout)),
		zap.String("to", cfg.To.Format(dateLayout)))
}

// seedEntries imports one randomly chosen sample per day from `from` to `to` inclusive.
func seedEntries(ctx context.Context, journal entryImporter, from, to time.Time, rng *rand.Rand) (int, error) {
	op := "seed.seedEntries"

	n := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		entry := models.Entry{
			Text:      samples[rng.Intn(len(samples))],
			Timestamp: day,
		}
		if _, err := journal.ImportEntry(ctx, entry); err != nil {
			return n, fmt.Errorf("%s: %s: %w", op, day.Format(dateLayout), err)
		}
		n++
	}
	return n, nil
}
