package cache

import (
	"testing"
	"time"
)

func TestKey_DeterministicAndDistinct(t *testing.T) {
	a := Key("digest", "Acme", "2024")
	b := Key("digest", "Acme", "2024")
	if a != b {
		t.Error("identical parts must produce identical keys")
	}

	c := Key("digest", "Acme2024", "")
	if a == c {
		t.Error("part boundaries must be significant")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "payload" {
		t.Errorf("Get = %q/%v, want payload/true", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "payload" {
		t.Errorf("Get = %q/%v, want payload/true", got, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("payload"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	// Write through both layers, then clear memory only
	if err := c.Set("k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.memory.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	got, found := c.Get("k")
	if !found || string(got) != "payload" {
		t.Fatalf("Get after memory clear = %q/%v, want payload/true", got, found)
	}

	// The hit should now be served from memory again
	if _, found := c.memory.Get("k"); !found {
		t.Error("expected disk hit to be promoted to memory")
	}
}
