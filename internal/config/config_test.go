package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chainport.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("server address = %q", cfg.Server.Address)
	}
	if cfg.Mode != "production" {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.Probe.IntervalSeconds != 60 || cfg.Probe.TimeoutSeconds != 10 {
		t.Fatalf("probe defaults = %d/%d", cfg.Probe.IntervalSeconds, cfg.Probe.TimeoutSeconds)
	}
	if cfg.Status.Driver != "memory" || cfg.Notifier.Driver != "log" || cfg.History.Driver != "memory" {
		t.Fatalf("driver defaults = %s/%s/%s", cfg.Status.Driver, cfg.Notifier.Driver, cfg.History.Driver)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("logging defaults = %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Status.Redis.RefreshSeconds != 15 {
		t.Fatalf("redis refresh default = %d", cfg.Status.Redis.RefreshSeconds)
	}
	if cfg.Alerting.SlackChannel != "" {
		t.Fatalf("slack channel must stay empty without a webhook, got %q", cfg.Alerting.SlackChannel)
	}
}

func TestLoadDefaultsSlackChannelWithWebhook(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{"alerting": {"slack_webhook": "https://hooks.slack.com/services/T/B/X"}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Alerting.SlackChannel != "#chainport" {
		t.Fatalf("slack channel default = %q", cfg.Alerting.SlackChannel)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "redis.internal:6379")

	cfg, err := Load(writeConfig(t, `{
		"mode": "development",
		"status": {"driver": "redis", "redis": {"address": "${TEST_REDIS_ADDR}"}}
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != "development" {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.Status.Redis.Address != "redis.internal:6379" {
		t.Fatalf("redis address = %q", cfg.Status.Redis.Address)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	if _, err := Load(writeConfig(t, `{"mode":`)); err == nil {
		t.Fatal("expected error for malformed json")
	}
}
