package shelldisplay

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, path, theme string) {
	t.Helper()
	content := "theme = \"" + theme + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestWatchConfigReloadsTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "display.toml")
	writeConfigFile(t, path, "dark")

	c := newTestController(t)
	w, err := WatchConfig(path, c)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Close()

	writeConfigFile(t, path, "light")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if c.Theme().Name == "light" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("theme = %q after config rewrite, want %q", c.Theme().Name, "light")
}

func TestWatchConfigSurvivesRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "display.toml")
	writeConfigFile(t, path, "dark")

	c := newTestController(t)
	w, err := WatchConfig(path, c)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Close()

	// Editors often write a temp file and rename it over the target. The
	// directory watch must catch the rename.
	tmp := filepath.Join(dir, "display.toml.tmp")
	writeConfigFile(t, tmp, "light")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if c.Theme().Name == "light" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("theme = %q after rename-in-place, want %q", c.Theme().Name, "light")
}

func TestWatchConfigIgnoresBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "display.toml")
	writeConfigFile(t, path, "dark")

	c := newTestController(t)
	w, err := WatchConfig(path, c)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("symbol_mode = \"wrong\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// A broken config must not change the active theme.
	time.Sleep(200 * time.Millisecond)
	if c.Theme().Name != "dark" {
		t.Errorf("theme = %q after invalid config, want %q", c.Theme().Name, "dark")
	}
}

func TestWatchConfigCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "display.toml")
	writeConfigFile(t, path, "dark")

	c := newTestController(t)
	w, err := WatchConfig(path, c)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWatchConfigNilController(t *testing.T) {
	if _, err := WatchConfig("display.toml", nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("WatchConfig(nil) = %v, want ErrInvalidParameter", err)
	}
}
