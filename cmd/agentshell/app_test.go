package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/npratt/agentshell/internal/config"
	"github.com/npratt/agentshell/internal/shell"
)

func fixedClock() shell.Option {
	return shell.WithClock(func() time.Time { return journalTime })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRunScript_Text(t *testing.T) {
	var out bytes.Buffer
	err := runScript(context.Background(), &out, config.Default(),
		[]string{"cycle plan", "run", "screen tooling"}, false, discardLogger(), fixedClock())
	if err != nil {
		t.Fatalf("runScript failed: %v", err)
	}

	for _, want := range []string{
		"plan: Running",
		"toolchain run: 3 entries logged",
		"screen: Tooling",
		"[Tooling]",
		"runs: 1",
		"[09:26:53] Router matched: JS runtime",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunScript_JSON(t *testing.T) {
	var out bytes.Buffer
	err := runScript(context.Background(), &out, config.Default(),
		[]string{"validate", "cycle nope", "run"}, true, discardLogger(), fixedClock())
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("runScript error = %v, want line 2 failure", err)
	}

	var got scriptOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got.Results) != 1 || got.Results[0] != "validation: Failed" {
		t.Errorf("results = %q", got.Results)
	}
	if !strings.Contains(got.Error, "line 2") {
		t.Errorf("error = %q", got.Error)
	}
	if got.Screen != "overview" {
		t.Errorf("screen = %q, want overview", got.Screen)
	}
	if got.View.Validation.Status != "Failed" || got.View.Tooling.Runs != 0 {
		t.Errorf("view = %+v", got.View)
	}
}

func TestRunScript_WritesJournal(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Enabled = true
	cfg.Paths.Journal = filepath.Join(t.TempDir(), "journal.jsonl")

	err := runScript(context.Background(), &bytes.Buffer{}, cfg,
		[]string{"validate", "snapshot"}, false, discardLogger(), fixedClock())
	if err != nil {
		t.Fatalf("runScript failed: %v", err)
	}

	var buf bytes.Buffer
	if err := tailLast(&buf, cfg.Paths.Journal, 0, "15:04:05"); err != nil {
		t.Fatalf("tailLast failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("journal has %d events, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "session started (script, screen overview)") {
		t.Errorf("first event = %q", lines[0])
	}
	if lines[1] != "09:26:53 validation #1: Failed" {
		t.Errorf("second event = %q", lines[1])
	}
	if lines[2] != "09:26:53 snapshot stored: 13 snapshots, 2 GB" {
		t.Errorf("third event = %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "session ended: done") {
		t.Errorf("last event = %q", lines[3])
	}
}

func TestOpenApp_InvalidScreen(t *testing.T) {
	cfg := config.Default()
	cfg.UI.InitialScreen = "settings"

	_, err := openApp(context.Background(), cfg, discardLogger())
	if !errors.Is(err, shell.ErrUnknownScreen) {
		t.Errorf("openApp error = %v, want ErrUnknownScreen", err)
	}
}

func TestBindFlags_MapsToConfigKeys(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagScreen, "", "")
	fs.Bool(FlagJournal, false, "")
	fs.String(FlagJournalFile, "", "")
	bindFlags(fs)

	if err := fs.Parse([]string{"--screen", "tooling", "--journal", "--journal-file", "/tmp/j.jsonl"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.UI.InitialScreen != "tooling" {
		t.Errorf("initial screen = %q, want tooling", cfg.UI.InitialScreen)
	}
	if !cfg.Journal.Enabled {
		t.Error("--journal should enable the journal")
	}
	if cfg.Paths.Journal != "/tmp/j.jsonl" {
		t.Errorf("journal path = %q", cfg.Paths.Journal)
	}
}
