package config

import (
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(envMap(map[string]string{"OPENAI_API_KEY": "sk-test"}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPAddr != ":5000" || cfg.StorageDriver != DriverPostgres {
		t.Fatalf("addr=%q driver=%q", cfg.HTTPAddr, cfg.StorageDriver)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" || cfg.PromptTimeout != 10*time.Second {
		t.Fatalf("model=%q timeout=%v", cfg.OpenAIModel, cfg.PromptTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("origins=%q", cfg.CORSAllowedOrigins)
	}
	if cfg.PromptRateLimit != 30 || cfg.BreakerMaxFailures != 5 {
		t.Fatalf("rate=%d breaker=%d", cfg.PromptRateLimit, cfg.BreakerMaxFailures)
	}
}

func TestFromEnv_MissingAPIKeyRefusesToStart(t *testing.T) {
	t.Parallel()

	_, err := FromEnv(envMap(map[string]string{}))
	if err == nil {
		t.Fatalf("expected error without OPENAI_API_KEY")
	}
	if !strings.Contains(err.Error(), "OpenAIKey") {
		t.Fatalf("err=%v", err)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(envMap(map[string]string{
		"OPENAI_API_KEY":       "sk-test",
		"HTTP_ADDR":            ":8080",
		"STORAGE_DRIVER":       "Memory",
		"OPENAI_MODEL":         "gpt-4o-mini",
		"OPENAI_BASE_URL":      "http://localhost:9999/v1",
		"PROMPT_TIMEOUT":       "3s",
		"BREAKER_MAX_FAILURES": "2",
		"BREAKER_COOLDOWN":     "1m",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000, http://127.0.0.1:3000",
		"PROMPT_RATE_LIMIT":    "0",
		"LOG_LEVEL":            "DEBUG",
		"LOG_FORMAT":           "console",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.StorageDriver != DriverMemory || cfg.HTTPAddr != ":8080" {
		t.Fatalf("driver=%q addr=%q", cfg.StorageDriver, cfg.HTTPAddr)
	}
	if cfg.PromptTimeout != 3*time.Second || cfg.BreakerCooldown != time.Minute || cfg.BreakerMaxFailures != 2 {
		t.Fatalf("timeout=%v cooldown=%v failures=%d", cfg.PromptTimeout, cfg.BreakerCooldown, cfg.BreakerMaxFailures)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://127.0.0.1:3000" {
		t.Fatalf("origins=%q", cfg.CORSAllowedOrigins)
	}
	if cfg.PromptRateLimit != 0 || cfg.LogLevel != "debug" || cfg.LogFormat != "console" {
		t.Fatalf("rate=%d level=%q format=%q", cfg.PromptRateLimit, cfg.LogLevel, cfg.LogFormat)
	}
}

func TestFromEnv_RejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := map[string]map[string]string{
		"bad duration": {"OPENAI_API_KEY": "k", "PROMPT_TIMEOUT": "soon"},
		"bad integer":  {"OPENAI_API_KEY": "k", "PROMPT_RATE_LIMIT": "lots"},
		"bad driver":   {"OPENAI_API_KEY": "k", "STORAGE_DRIVER": "sqlite"},
		"bad level":    {"OPENAI_API_KEY": "k", "LOG_LEVEL": "loud"},
		"zero timeout": {"OPENAI_API_KEY": "k", "PROMPT_TIMEOUT": "0s"},
	}
	for name, env := range cases {
		if _, err := FromEnv(envMap(env)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
