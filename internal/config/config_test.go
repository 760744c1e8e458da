package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskdash/internal/config"
)

func TestNew_ExplicitDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.ServerURL != config.DefaultServerURL {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
}

func TestNew_ServerURLFromSettings(t *testing.T) {
	dir := t.TempDir()
	settings := []byte(`{"server_url":"https://dash.example.com"}`)
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), settings, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "https://dash.example.com" {
		t.Errorf("expected settings server URL, got %q", cfg.ServerURL)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	want := filepath.Join("/tmp/xdgtest", "taskdash")
	if got := config.DefaultConfigDir(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHasUserAndRemove(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	if cfg.HasUser() {
		t.Error("expected no user initially")
	}
	if err := os.WriteFile(cfg.UserPath(), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasUser() {
		t.Error("expected user after write")
	}
	if err := cfg.RemoveUser(); err != nil {
		t.Fatal(err)
	}
	if cfg.HasUser() {
		t.Error("expected no user after removal")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested")}

	want := config.Settings{ServerURL: "http://127.0.0.1:5000", Theme: "light"}
	if err := cfg.SaveSettings(want); err != nil {
		t.Fatal(err)
	}

	got, err := cfg.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	info, err := os.Stat(cfg.SettingsPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 settings file, got %o", perm)
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	s, err := cfg.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if s != (config.Settings{}) {
		t.Errorf("expected zero settings, got %+v", s)
	}
}
