package store

import (
	"sync"
	"testing"
	"time"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
)

func testMeta() Meta {
	return Meta{
		Filename:  "chest.png",
		SizeBytes: 1024,
		Width:     32,
		Height:    32,
		Format:    "PNG",
		Uploaded:  time.Now(),
	}
}

func TestStore_PutGet(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	img := filter.NewBuffer(32, 32)
	img.Set(5, 5, 99)
	id := s.Put(img, testMeta())
	if len(id) != 32 {
		t.Errorf("id length = %d, want 32 hex chars", len(id))
	}

	got, meta, ok := s.Get(id)
	if !ok {
		t.Fatal("Get returned false for a fresh entry")
	}
	if got.At(5, 5) != 99 {
		t.Error("stored image content lost")
	}
	if meta.Filename != "chest.png" || meta.Format != "PNG" {
		t.Errorf("meta: got %+v", meta)
	}

	if _, _, ok := s.Get("0123456789abcdef0123456789abcdef"); ok {
		t.Error("Get returned true for an unknown id")
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.Put(filter.NewBuffer(1, 1), Meta{})
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if s.Len() != 100 {
		t.Errorf("Len() = %d, want 100", s.Len())
	}
}

func TestStore_ExpiryOnAccess(t *testing.T) {
	s := New(10 * time.Millisecond)
	defer s.Close()

	id := s.Put(filter.NewBuffer(1, 1), Meta{})
	time.Sleep(30 * time.Millisecond)

	if _, _, ok := s.Get(id); ok {
		t.Fatal("Get returned an expired entry")
	}
	// Expired access evicts immediately, without waiting for the janitor.
	if s.Len() != 0 {
		t.Errorf("Len() = %d after expired access, want 0", s.Len())
	}
}

func TestStore_Evict(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	id := s.Put(filter.NewBuffer(1, 1), Meta{})
	s.Evict(id)
	if _, _, ok := s.Get(id); ok {
		t.Error("Get returned an evicted entry")
	}

	s.Evict("not-there") // no-op, must not panic
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := s.Put(filter.NewBuffer(4, 4), Meta{})
				if _, _, ok := s.Get(id); !ok {
					t.Error("fresh entry not found")
					return
				}
				s.Evict(id)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after paired put/evict, want 0", s.Len())
	}
}

func TestStore_CloseIdempotent(t *testing.T) {
	s := New(time.Minute)
	s.Close()
	s.Close() // second close must not panic

	// The store stays usable after Close.
	id := s.Put(filter.NewBuffer(1, 1), Meta{})
	if _, _, ok := s.Get(id); !ok {
		t.Error("store unusable after Close")
	}
}
