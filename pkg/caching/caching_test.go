package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if _, ok := cache.Get("query-1"); ok {
		t.Error("Get() on empty cache hit")
	}

	if err := cache.Set("query-1", []byte("response body")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok := cache.Get("query-1")
	if !ok {
		t.Fatal("Get() after Set() missed")
	}
	if string(data) != "response body" {
		t.Errorf("Get() = %q", data)
	}

	// A different request must not collide.
	if _, ok := cache.Get("query-2"); ok {
		t.Error("Get() hit for a different request")
	}
}

func TestZeroTTLDisablesCache(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if err := cache.Set("query", []byte("data")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok := cache.Get("query"); ok {
		t.Error("Get() hit with zero TTL, want miss")
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, time.Minute)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if err := cache.Set("query", []byte("data")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Age the entry past the TTL.
	old := time.Now().Add(-2 * time.Minute)
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if err := os.Chtimes(filepath.Join(dir, e.Name()), old, old); err != nil {
			t.Fatalf("Chtimes() error: %v", err)
		}
	}

	if _, ok := cache.Get("query"); ok {
		t.Error("Get() hit on expired entry")
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, time.Minute)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	cache.Set("fresh", []byte("a"))
	cache.Set("stale", []byte("b"))

	// Age only the stale entry.
	old := time.Now().Add(-2 * time.Minute)
	stalePath := filepath.Join(dir, cache.key("stale"))
	if err := os.Chtimes(stalePath, old, old); err != nil {
		t.Fatalf("Chtimes() error: %v", err)
	}

	removed, err := cache.Prune()
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}
	if _, ok := cache.Get("fresh"); !ok {
		t.Error("Prune() removed a fresh entry")
	}
	if _, ok := cache.Get("stale"); ok {
		t.Error("Prune() kept the stale entry")
	}
}

func TestClear(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	cache.Set("a", []byte("1"))
	cache.Set("b", []byte("2"))

	removed, err := cache.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear() removed %d, want 2", removed)
	}
	if _, ok := cache.Get("a"); ok {
		t.Error("Get() hit after Clear()")
	}
}
