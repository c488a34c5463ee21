package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nexusfab/tiletopo/internal/config"
)

func TestCachePath(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	// runCLI points XDG_CACHE_HOME at its own temp dir.
	if !strings.HasSuffix(strings.TrimSpace(out), config.AppName) {
		t.Errorf("cache path = %q, should end with %q", out, config.AppName)
	}
}

func TestCacheDirBackends(t *testing.T) {
	c := &CLI{cfg: &config.Config{Cache: config.Cache{Backend: config.BackendFile, Dir: "/var/cache/x"}}}
	if dir, err := c.cacheDir(); err != nil || dir != "/var/cache/x" {
		t.Errorf("file backend = %q, %v", dir, err)
	}

	c.cfg.Cache.Backend = config.BackendRedis
	if _, err := c.cacheDir(); err == nil {
		t.Error("redis backend should have no local directory")
	}

	c.cfg.Cache.Backend = config.BackendNone
	if _, err := c.cacheDir(); err == nil {
		t.Error("disabled cache should have no directory")
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ab/one.json", "cd/two.json"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}
