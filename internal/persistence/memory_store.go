package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

type memoryRecord struct {
	body      []byte
	writer    string
	updatedAt time.Time
}

// MemoryStore is an in-process DocumentStore
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]memoryRecord
	now  func() time.Time

	failPuts    bool
	failDeletes bool
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string]memoryRecord),
		now:  time.Now,
	}
}

// SetNow replaces the store clock
func (s *MemoryStore) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetFailures makes Put and Delete fail with ErrStorageFailure while set
func (s *MemoryStore) SetFailures(puts, deletes bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPuts = puts
	s.failDeletes = deletes
}

// Get implements DocumentStore
func (s *MemoryStore) Get(_ context.Context, collection, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.docs[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrDocumentNotFound, collection, id)
	}
	return append([]byte(nil), rec.body...), nil
}

// Put implements DocumentStore
func (s *MemoryStore) Put(ctx context.Context, collection, id string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPuts {
		return fmt.Errorf("%w: put %s/%s", domain.ErrStorageFailure, collection, id)
	}
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]memoryRecord)
	}
	s.docs[collection][id] = memoryRecord{
		body:      append([]byte(nil), body...),
		writer:    WriterFromContext(ctx),
		updatedAt: s.now(),
	}
	return nil
}

// Delete implements DocumentStore. Deleting a missing document is not an error.
func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeletes {
		return fmt.Errorf("%w: delete %s/%s", domain.ErrStorageFailure, collection, id)
	}
	delete(s.docs[collection], id)
	return nil
}

// Changes implements DocumentStore
func (s *MemoryStore) Changes(_ context.Context, collection string, since time.Time) ([]Change, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Change
	for id, rec := range s.docs[collection] {
		if rec.updatedAt.After(since) {
			out = append(out, Change{ID: id, UpdatedAt: rec.updatedAt, Writer: rec.writer})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	return out, nil
}
