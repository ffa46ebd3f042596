package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

const dateLayout = "2006-01-02"

type Config struct {
	DSN  string
	From time.Time
	To   time.Time
	Seed int64
}

func (c Config) Validate() error {
	if c.DSN == "" {
		return errors.New("missing -dsn (or POSTGRES_DSN)")
	}
	if c.To.Before(c.From) {
		return fmt.Errorf("-to %s is before -from %s", c.To.Format(dateLayout), c.From.Format(dateLayout))
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		DSN:  os.Getenv("POSTGRES_DSN"),
		From: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Seed: time.Now().UnixNano(),
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()

	from := cfg.From.Format(dateLayout)
	to := cfg.To.Format(dateLayout)

	fs.StringVar(&cfg.DSN, "dsn", cfg.DSN, "Postgres connection string")
	fs.StringVar(&from, "from", from, "first day to seed (YYYY-MM-DD)")
	fs.StringVar(&to, "to", to, "last day to seed, inclusive (YYYY-MM-DD)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for picking sample lines")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.From, err = time.Parse(dateLayout, from); err != nil {
		return Config{}, fmt.Errorf("invalid -from: %w", err)
	}
	if cfg.To, err = time.Parse(dateLayout, to); err != nil {
		return Config{}, fmt.Errorf("invalid -to: %w", err)
	}

	return cfg, cfg.Validate()
}
