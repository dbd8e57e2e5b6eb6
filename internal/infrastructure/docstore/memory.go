package docstore

import (
	"sync"
	"time"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// MemoryStore keeps analyzed documents in process memory, keyed by document
// ID. Contents do not survive a restart; the HTTP layer treats a miss as "not
// analyzed yet".
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]domain.Document

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]domain.Document),
		now:  time.Now,
	}
}

func (s *MemoryStore) Put(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

func (s *MemoryStore) Get(id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// EvictOlderThan removes every document analyzed more than age ago and
// returns the removed entries so the caller can release their files.
func (s *MemoryStore) EvictOlderThan(age time.Duration) []domain.Document {
	cutoff := s.now().Add(-age)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []domain.Document
	for id, doc := range s.docs {
		if doc.CreatedAt.Before(cutoff) {
			removed = append(removed, doc)
			delete(s.docs, id)
		}
	}
	return removed
}
