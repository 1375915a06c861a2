package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png-bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Get(k) = %q, want %q", data, "png-bytes")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after Clear, has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	cfg := []byte(`{"scale":1}`)
	png := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Config: cfg})
	svg := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Config: cfg})
	if png == svg {
		t.Error("Different formats should produce different keys")
	}

	scaled := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Config: []byte(`{"scale":2}`)})
	if png == scaled {
		t.Error("Different configs should produce different keys")
	}

	font := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Config: cfg, Font: "/f.ttf", FontDigest: "aa"})
	replaced := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Config: cfg, Font: "/f.ttf", FontDigest: "bb"})
	if font == replaced {
		t.Error("Different font contents should produce different keys")
	}

	other := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "png", Config: cfg})
	if png == other {
		t.Error("Different data hashes should produce different keys")
	}

	if !strings.HasPrefix(png, "artifact:") {
		t.Errorf("ArtifactKey should be prefixed, got %s", png)
	}
	if again := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Config: cfg}); again != png {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestNewRedisCacheInvalidURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://not-redis", ""); err == nil {
		t.Error("NewRedisCache with non-redis scheme should fail")
	}
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	c := newRedisCache(client, "")
	if got := c.key("artifact:abc"); got != DefaultRedisPrefix+"artifact:abc" {
		t.Errorf("key() = %q, want default prefix", got)
	}

	c = newRedisCache(client, "tenant:")
	if got := c.key("x"); got != "tenant:x" {
		t.Errorf("key() = %q, want %q", got, "tenant:x")
	}
}
