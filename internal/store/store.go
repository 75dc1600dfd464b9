// Package store provides the in-memory session store for uploaded X-ray
// images. Entries are keyed by a random id and expire after a configurable
// TTL; a janitor goroutine sweeps expired entries so memory stays bounded
// for long-running servers.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/minhquana1906/Abnormal-Prediction-In-Chest-X-Ray/internal/filter"
)

// Meta describes an uploaded image.
type Meta struct {
	Filename  string    `json:"filename"`
	SizeBytes int       `json:"size_bytes"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Format    string    `json:"format"`
	Uploaded  time.Time `json:"uploaded"`
}

type entry struct {
	image    *filter.Buffer
	meta     Meta
	storedAt time.Time
}

// Store is a thread-safe TTL-bounded image session store. All methods are
// safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	stop chan struct{}
	once sync.Once
}

// New creates a store whose entries expire after ttl and starts the
// background janitor. Call Close to stop it.
func New(ttl time.Duration) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put stores an image with its metadata and returns the generated id.
func (s *Store) Put(img *filter.Buffer, meta Meta) string {
	id := newID()
	s.mu.Lock()
	s.entries[id] = entry{image: img, meta: meta, storedAt: time.Now()}
	s.mu.Unlock()
	return id
}

// Get returns the image and metadata for id. Expired or unknown ids return
// false; expired entries are removed on access rather than waiting for the
// janitor.
func (s *Store) Get(id string) (*filter.Buffer, Meta, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, Meta{}, false
	}
	if time.Since(e.storedAt) > s.ttl {
		s.Evict(id)
		return nil, Meta{}, false
	}
	return e.image, e.meta, true
}

// Evict removes an entry, if present.
func (s *Store) Evict(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Len returns the number of stored entries, including any not yet swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor goroutine. The store remains usable but expired
// entries are then only removed on access.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) janitor() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) sweep() {
	now := time.Now()
	s.mu.Lock()
	for id, e := range s.entries {
		if now.Sub(e.storedAt) > s.ttl {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}

// newID returns a 32-character random hex id.
func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
