package ports

import (
	"context"

	"github.com/zapflowhq/zapflow/pkg/document"
)

// DocumentStore defines the interface for persisting step-script documents,
// keyed by campaign. The engine issues a single in-flight save or load at a
// time and never retries; implementations surface failures verbatim.
type DocumentStore interface {
	// Save persists the document for a campaign.
	Save(ctx context.Context, campaignID string, doc *document.Document) error

	// Load retrieves the document for a campaign.
	// Returns flow.ErrCampaignNotFound if the campaign does not exist.
	Load(ctx context.Context, campaignID string) (*document.Document, error)

	// Delete removes the document for a campaign.
	Delete(ctx context.Context, campaignID string) error

	// List returns the campaign IDs with a stored document.
	List(ctx context.Context) ([]string, error)
}
