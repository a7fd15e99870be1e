package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "tree:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	if err := c.Set(ctx, "tree:abc", []byte("0 root v1.0.0"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "tree:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if string(data) != "0 root v1.0.0" {
		t.Errorf("Get returned %q", data)
	}

	if err := c.Delete(ctx, "tree:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "tree:abc")
	if hit {
		t.Error("Get after Delete should miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "bloat:abc", []byte("{}"), -time.Second); err == nil {
		// Non-positive TTL means no expiry
		_, hit, _ := c.Get(ctx, "bloat:abc")
		if !hit {
			t.Error("entry without expiry should hit")
		}
	}

	if err := c.Set(ctx, "bloat:def", []byte("{}"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	_, hit, _ := c.Get(ctx, "bloat:def")
	if hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	for _, key := range []string{"tree:a", "tree:b", "bloat:c"} {
		if err := c.Set(ctx, key, []byte("x"), 0); err != nil {
			t.Fatalf("Set %s error: %v", key, err)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	for _, key := range []string{"tree:a", "tree:b", "bloat:c"} {
		if _, hit, _ := c.Get(ctx, key); hit {
			t.Errorf("Get %s after Clear should miss", key)
		}
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestKey(t *testing.T) {
	type opts struct {
		Package string
		Release bool
	}

	k1 := Key("bloat", opts{Package: "serde", Release: true}, []byte("lock-v1"))
	k2 := Key("bloat", opts{Package: "serde", Release: true}, []byte("lock-v1"))
	if k1 != k2 {
		t.Error("Key should be deterministic")
	}

	// Any differing component changes the key
	if k1 == Key("tree", opts{Package: "serde", Release: true}, []byte("lock-v1")) {
		t.Error("subcommand should participate in the key")
	}
	if k1 == Key("bloat", opts{Package: "serde"}, []byte("lock-v1")) {
		t.Error("options should participate in the key")
	}
	if k1 == Key("bloat", opts{Package: "serde", Release: true}, []byte("lock-v2")) {
		t.Error("lock file should participate in the key")
	}

	if k1[:6] != "bloat:" {
		t.Errorf("key should be prefixed with the subcommand: %s", k1)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
