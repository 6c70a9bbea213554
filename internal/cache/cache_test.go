package cache

import (
	"testing"
	"time"
)

func TestKeyCanonicalization(t *testing.T) {
	got := Key("catalog", "en-US", "movie", "tmdb.top", "", "1")
	want := "tmdb-addon|catalog:en-US:movie:tmdb.top::1"
	if got != want {
		t.Fatalf("Key = %q, want %q", got, want)
	}

	// Absent discriminators passed as empty strings must collide with the
	// equivalent request.
	if Key("catalog", "en-US", "movie", "tmdb.top", "", "1") != got {
		t.Fatal("equivalent requests produced different keys")
	}
}

func TestGetOrComputeCachesResult(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 2; i++ {
		v, err := GetOrCompute(store, "k", time.Minute, compute)
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if v != "value" {
			t.Fatalf("got %q, want %q", v, "value")
		}
	}
	if calls != 1 {
		t.Fatalf("compute invoked %d times, want 1", calls)
	}
}

func TestGetOrComputeNilStoreAlwaysComputes(t *testing.T) {
	calls := 0
	for i := 0; i < 3; i++ {
		if _, err := GetOrCompute[int](nil, "k", time.Minute, func() (int, error) {
			calls++
			return calls, nil
		}); err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("compute invoked %d times, want 3", calls)
	}
}

func TestGetOrComputeExpiredEntryRecomputes(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	if _, err := GetOrCompute(store, "k", time.Millisecond, compute); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := GetOrCompute(store, "k", time.Millisecond, compute); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if calls != 2 {
		t.Fatalf("compute invoked %d times, want 2", calls)
	}
}

func TestMemoryStoreReset(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	if err := store.Set("k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var v string
	ok, err := store.Get("k", &v)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry survived Reset")
	}
}
