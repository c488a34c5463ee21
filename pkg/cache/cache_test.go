package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("null cache Get should always miss")
	}
	if data != nil {
		t.Error("null cache Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("null cache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHashKey(t *testing.T) {
	a := hashKey("tilebits", "/db", "ECP5", "PLC2")
	if a != hashKey("tilebits", "/db", "ECP5", "PLC2") {
		t.Error("hashKey should be deterministic")
	}
	if !strings.HasPrefix(a, "tilebits:") || len(a) != len("tilebits:")+64 {
		t.Errorf("hashKey = %s, want tilebits: and a sha256 hex digest", a)
	}

	tests := []struct {
		name string
		key  string
	}{
		{"shifted boundary", hashKey("tilebits", "/db", "ECP", "5PLC2")},
		{"joined parts", hashKey("tilebits", "/db", "ECP5PLC2")},
		{"extra empty part", hashKey("tilebits", "/db", "ECP5", "PLC2", "")},
		{"version as part", hashKey("tilebits", keyVersion, "/db", "ECP5", "PLC2")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if strings.TrimPrefix(tt.key, "tilebits:") == strings.TrimPrefix(a, "tilebits:") {
				t.Errorf("digest collides with %s", a)
			}
		})
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.TileBitsKey("/db", "ECP5", "CIB_EBR")
	if a != k.TileBitsKey("/db", "ECP5", "CIB_EBR") {
		t.Error("TileBitsKey should be deterministic")
	}
	if !strings.HasPrefix(a, "tilebits:") {
		t.Errorf("TileBitsKey prefix: %s", a)
	}

	tests := []struct {
		name string
		key  string
	}{
		{"other root", k.TileBitsKey("/other", "ECP5", "CIB_EBR")},
		{"other family", k.TileBitsKey("/db", "MachXO2", "CIB_EBR")},
		{"other tiletype", k.TileBitsKey("/db", "ECP5", "PLC2")},
		{"tilegrid", k.TilegridKey("/db", "ECP5", "CIB_EBR")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == a {
				t.Errorf("key should differ from %s", a)
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "lab:a:")

	got := scoped.TileBitsKey("/db", "ECP5", "PLC2")
	if got != "lab:a:"+inner.TileBitsKey("/db", "ECP5", "PLC2") {
		t.Errorf("ScopedKeyer TileBitsKey unexpected: %s", got)
	}

	got = scoped.TilegridKey("/db", "ECP5", "LFE5U-25F")
	if !strings.HasPrefix(got, "lab:a:tilegrid:") {
		t.Errorf("ScopedKeyer TilegridKey should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.TilegridKey("/db", "ECP5", "LFE5U-25F")
	if key != "prefix:"+NewDefaultKeyer().TilegridKey("/db", "ECP5", "LFE5U-25F") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get missing = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want %q", data, "value")
	}

	if err := c.Set(ctx, "key", []byte("replaced"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, _, _ = c.Get(ctx, "key")
	if string(data) != "replaced" {
		t.Errorf("Get after overwrite = %q", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	path := fc.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestBackoffRetry(t *testing.T) {
	fast := Backoff{Attempts: 3, Initial: time.Millisecond}
	refused := fmt.Errorf("%w: dial tcp 127.0.0.1:6379: connection refused", ErrNetwork)
	denied := errors.New("NOAUTH authentication required")

	tests := []struct {
		name      string
		results   []error
		wantErr   error
		wantCalls int
	}{
		{"first try", []error{nil}, nil, 1},
		{"recovers", []error{refused, nil}, nil, 2},
		{"not a network error", []error{denied, nil}, denied, 1},
		{"exhausted", []error{refused, refused, refused, nil}, refused, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Retry(context.Background(), func() error {
				calls++
				return tt.results[calls-1]
			})
			if err != tt.wantErr {
				t.Errorf("Retry() = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffDelays(t *testing.T) {
	b := Backoff{Attempts: 4, Initial: 5 * time.Millisecond, Max: 8 * time.Millisecond}
	var stamps []time.Time
	_ = b.Retry(context.Background(), func() error {
		stamps = append(stamps, time.Now())
		return ErrNetwork
	})
	if len(stamps) != 4 {
		t.Fatalf("calls = %d, want 4", len(stamps))
	}
	// Waits are 5ms, 8ms (capped from 10ms) and 8ms.
	for i, ms := range []time.Duration{5, 8, 8} {
		if gap := stamps[i+1].Sub(stamps[i]); gap < ms*time.Millisecond {
			t.Errorf("wait %d = %v, want at least %v", i, gap, ms*time.Millisecond)
		}
	}
}

func TestBackoffRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Retry(ctx, func() error { return ErrNetwork })
	if err != context.Canceled {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestBackoffOrDefault(t *testing.T) {
	if got := (Backoff{}).orDefault(); got != DefaultBackoff {
		t.Errorf("zero policy = %+v, want DefaultBackoff", got)
	}
	single := Backoff{Attempts: 1}
	if got := single.orDefault(); got != single {
		t.Errorf("set policy replaced: %+v", got)
	}
	calls := 0
	_ = single.Retry(context.Background(), func() error { calls++; return ErrNetwork })
	if calls != 1 {
		t.Errorf("single attempt made %d calls", calls)
	}
}
