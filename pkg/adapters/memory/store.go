package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*document.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*document.Document),
	}
}

// Save persists the document in memory.
func (s *Store) Save(ctx context.Context, campaignID string, doc *document.Document) error {
	// Deep copy to ensure isolation, same guarantee serialization gives
	copied, err := doc.Clone()
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[campaignID] = copied
	return nil
}

// Load retrieves the document from memory.
func (s *Store) Load(ctx context.Context, campaignID string) (*document.Document, error) {
	s.mu.RLock()
	doc, ok := s.data[campaignID]
	s.mu.RUnlock()
	if !ok {
		return nil, flow.ErrCampaignNotFound
	}

	// Copy on read so the caller can't mutate stored state by pointer
	copied, err := doc.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return copied, nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, campaignID)
	return nil
}

// List returns campaigns with a stored document.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaigns := make([]string, 0, len(s.data))
	for id := range s.data {
		campaigns = append(campaigns, id)
	}
	return campaigns, nil
}
