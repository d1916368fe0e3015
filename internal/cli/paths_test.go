package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Run("home default", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		custom := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", custom)
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(custom, appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestCacheCommands(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}

	got, err := runRoot(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(got) != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	// Clearing a cache that was never created is not an error.
	if _, err := runRoot(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on empty cache: %v", err)
	}

	input := writeTiles(t, `{"tiles":[{"id":"wifi"},{"id":"bt"}]}`)
	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	if _, err := runRoot(t, "--settings", settingsPath, "layout", input, "-o", filepath.Join(t.TempDir(), "out.json")); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if n := countEntries(t, dir); n == 0 {
		t.Fatal("layout should have written a cache entry")
	}

	got, err = runRoot(t, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	if !strings.Contains(got, "layout") {
		t.Errorf("cache stats = %q, want a layout row", got)
	}

	if _, err := runRoot(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Errorf("cache clear left %d entries", n)
	}
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && filepath.Ext(path) == ".json" {
			n++
		}
		return nil
	})
	return n
}
