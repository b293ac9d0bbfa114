package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
)

// Store implements ports.DocumentStore on the local filesystem.
// Each campaign's step script lives in one JSON file under BasePath.
type Store struct {
	BasePath string
}

// NewStore creates a file store rooted at basePath.
// If basePath is empty, it defaults to ".zapflow/campaigns".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".zapflow", "campaigns")
	}
	return &Store{BasePath: basePath}
}

// Save persists the document to a JSON file.
func (f *Store) Save(ctx context.Context, campaignID string, doc *document.Document) error {
	if campaignID == "" {
		return fmt.Errorf("campaignID cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure campaign directory: %w", err)
	}

	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.WriteFile(f.path(campaignID), data, 0644); err != nil {
		return fmt.Errorf("failed to write campaign file: %w", err)
	}

	return nil
}

// Load retrieves the document from its JSON file.
func (f *Store) Load(ctx context.Context, campaignID string) (*document.Document, error) {
	if campaignID == "" {
		return nil, fmt.Errorf("campaignID cannot be empty")
	}

	data, err := os.ReadFile(f.path(campaignID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, flow.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to read campaign file: %w", err)
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return &doc, nil
}

// Delete removes the campaign file.
func (f *Store) Delete(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return fmt.Errorf("campaignID cannot be empty")
	}

	err := os.Remove(f.path(campaignID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete campaign file: %w", err)
	}

	return nil
}

// List returns all campaign IDs with a stored document.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	var campaigns []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			campaigns = append(campaigns, name[:len(name)-len(".json")])
		}
	}

	return campaigns, nil
}

func (f *Store) path(campaignID string) string {
	return filepath.Join(f.BasePath, campaignID+".json")
}
