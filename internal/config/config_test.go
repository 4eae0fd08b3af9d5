package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("STARRATE_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Page.Path != "" {
		t.Fatalf("page.path = %q, want bundled page", cfg.Page.Path)
	}
	if cfg.Log.Level != "info" || cfg.UI.Accent != "pink" || !cfg.UI.AltScreen {
		t.Fatalf("defaults = %+v", cfg)
	}
	want := filepath.Join(os.Getenv("HOME"), ".local", "state", "starrate", "starrate.log")
	if cfg.Log.File != want {
		t.Fatalf("log.file = %q, want %q", cfg.Log.File, want)
	}
}

func TestDefaultLogFileHonoursStateHome(t *testing.T) {
	isolate(t)
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	if got, want := DefaultLogFile(), filepath.Join(state, "starrate", "starrate.log"); got != want {
		t.Fatalf("DefaultLogFile() = %q, want %q", got, want)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "starrate.toml")
	body := `
[page]
path = "/srv/rating.html"

[log]
level = "debug"

[ui]
title = "Rate us"
alt_screen = false
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STARRATE_UI_ACCENT", "teal")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}
	if cfg.Page.Path != "/srv/rating.html" {
		t.Fatalf("page.path = %q", cfg.Page.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log.level = %q, want debug", cfg.Log.Level)
	}
	if cfg.UI.Title != "Rate us" || cfg.UI.AltScreen {
		t.Fatalf("ui = %+v", cfg.UI)
	}
	if cfg.UI.Accent != "teal" {
		t.Fatalf("ui.accent = %q, want env override teal", cfg.UI.Accent)
	}
}

func TestLoadConfigEnvPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntitle = \"from env path\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STARRATE_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Title != "from env path" {
		t.Fatalf("ui.title = %q", cfg.UI.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Fatalf("Load(bad level) error = %v, want log.level validation error", err)
	}
}
