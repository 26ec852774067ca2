package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONF_DIR", dir)
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("BOT_TOKEN", "")

	writeSettings(t, dir, `
BOT_TOKEN: "123:abc"
DEVELOPER_CHAT_ID: 42
MAIN_CHAT_ID: -100
MODERATION_COMPLAINT_THRESHOLD: 7
SOME_UNKNOWN_KEY: true
`)

	cfg, err := Load(testLogger())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Settings.BotToken != "123:abc" {
		t.Errorf("BotToken = %q", cfg.Settings.BotToken)
	}
	if cfg.Settings.ModerationComplaintThreshold != 7 {
		t.Errorf("override not applied, got %d", cfg.Settings.ModerationComplaintThreshold)
	}
	if cfg.Settings.MaxMessageLength != 4096 {
		t.Errorf("default lost, MaxMessageLength = %d", cfg.Settings.MaxMessageLength)
	}
	if got := len(cfg.Settings.ModerationRestrictionLadder); got != 3 {
		t.Errorf("default ladder has %d rungs, want 3", got)
	}
}

func TestLoadMissingMandatory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONF_DIR", dir)
	t.Setenv("BOT_TOKEN", "")

	writeSettings(t, dir, "BOT_TOKEN: x\nDEVELOPER_CHAT_ID: 1\n")

	if _, err := Load(testLogger()); err == nil {
		t.Fatal("Load() expected error for missing MAIN_CHAT_ID")
	}
}

func TestRewritePreservesOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONF_DIR", dir)
	t.Setenv("BOT_TOKEN", "")

	writeSettings(t, dir, `
BOT_TOKEN: "123:abc"
DEVELOPER_CHAT_ID: 42
MAIN_CHAT_ID: -100
GLOSSARY_REPLY_TO_MIN_TRIGGER_COUNT: 9
`)

	cfg, err := Load(testLogger())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.RewriteSettingsFile(); err != nil {
		t.Fatalf("RewriteSettingsFile() error = %v", err)
	}

	// The rewritten file must round-trip to the same effective settings.
	reloaded, err := Load(testLogger())
	if err != nil {
		t.Fatalf("Load() after rewrite error = %v", err)
	}
	if reloaded.Settings.GlossaryReplyToMinTriggerCount != 9 {
		t.Errorf("override lost after rewrite, got %d", reloaded.Settings.GlossaryReplyToMinTriggerCount)
	}
	if reloaded.Settings.MaxMessageLength != cfg.Settings.MaxMessageLength {
		t.Errorf("defaults diverged after rewrite")
	}

	// Commented defaults must still be present as text.
	raw, err := os.ReadFile(cfg.SettingsPath())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("rewritten file is not valid YAML: %v", err)
	}
	if _, ok := doc["MAX_MESSAGE_LENGTH"]; ok {
		t.Errorf("non-overridden default emitted live, want commented")
	}
	if _, ok := doc["GLOSSARY_REPLY_TO_MIN_TRIGGER_COUNT"]; !ok {
		t.Errorf("override missing from rewritten file")
	}
}
