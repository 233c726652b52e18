package memory

import (
	"context"
	"sync"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"
)

// IndexStore is an in-memory ports.IndexStore holding raw blobs by key.
type IndexStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	saves int

	shouldFailOn map[string]error
}

// NewIndexStore creates an empty index store
func NewIndexStore() *IndexStore {
	return &IndexStore{
		blobs:        make(map[string][]byte),
		shouldFailOn: make(map[string]error),
	}
}

// SetError makes an operation fail with err. method is "Load" or "Save",
// optionally suffixed with ":search" or ":tree" to target one kind.
func (s *IndexStore) SetError(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shouldFailOn[method] = err
}

// ClearErrors removes all configured errors.
func (s *IndexStore) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shouldFailOn = make(map[string]error)
}

func (s *IndexStore) checkError(method string, kind article.Kind) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err, ok := s.shouldFailOn[method+":"+string(kind)]; ok {
		return err
	}
	return s.shouldFailOn[method]
}

// Load returns a copy of the blob or ports.ErrIndexNotFound
func (s *IndexStore) Load(ctx context.Context, kind article.Kind, userID string) ([]byte, error) {
	if err := s.checkError("Load", kind); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[kind.Key(userID)]
	if !ok {
		return nil, ports.ErrIndexNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save overwrites the blob
func (s *IndexStore) Save(ctx context.Context, kind article.Kind, userID string, data []byte) error {
	if err := s.checkError("Save", kind); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[kind.Key(userID)] = append([]byte(nil), data...)
	s.saves++
	return nil
}

// Put seeds a raw blob without counting it as a save.
func (s *IndexStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
}

// Blob returns the raw blob stored under key.
func (s *IndexStore) Blob(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	return append([]byte(nil), data...), ok
}

// Saves returns the number of successful Save calls.
func (s *IndexStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
