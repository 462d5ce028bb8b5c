package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/archispec/pkg/errors"
	"github.com/matzehuels/archispec/pkg/specif"
)

// MemoryStore keeps models in process. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]document
	now  func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]document), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, m *specif.Model, source string) (Record, error) {
	doc, err := newDocument(m, source, s.now())
	if err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	s.docs[doc.ID] = doc
	s.mu.Unlock()
	return doc.Record, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*specif.Model, error) {
	if err := errors.ValidateModelID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return doc.decode()
}

// List returns records sorted by id.
func (s *MemoryStore) List(context.Context) ([]Record, error) {
	s.mu.RLock()
	out := make([]Record, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.Record)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return notFound(id)
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
