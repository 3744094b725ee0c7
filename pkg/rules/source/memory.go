package source

import (
	"context"
	"sync"
)

// MemorySource serves documents held in memory, in the order given.
type MemorySource struct {
	mu   sync.RWMutex
	docs []Document
}

// NewMemorySource creates a source serving docs.
func NewMemorySource(docs ...Document) *MemorySource {
	return &MemorySource{docs: append([]Document(nil), docs...)}
}

// Load returns a copy of the stored documents.
func (s *MemorySource) Load(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Document(nil), s.docs...), nil
}

// Set replaces the stored documents.
func (s *MemorySource) Set(docs ...Document) {
	s.mu.Lock()
	s.docs = append([]Document(nil), docs...)
	s.mu.Unlock()
}

func (s *MemorySource) String() string { return "memory" }
