package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
)

// RunDocumentStoreContract runs a suite of tests to verify that a
// DocumentStore implementation adheres to the interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	campaignID := "contract-test-campaign-" + time.Now().Format("20060102150405")

	sample := func() *document.Document {
		return &document.Document{
			Steps: map[string]document.Step{
				"inicio": {
					Message: "Olá! Escolha uma opção:",
					Responses: map[string]any{
						"1": map[string]any{"next": "fim", "valor": "Quero saber mais"},
					},
				},
				"fim": {Message: "Até logo!"},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, campaignID, sample())
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, campaignID)
		require.NoError(t, err, "Load should not return error")
		require.Contains(t, loaded.Steps, "inicio")
		assert.Equal(t, "Olá! Escolha uma opção:", loaded.Steps["inicio"].Message)
		assert.Contains(t, loaded.Steps, "fim")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+campaignID)
		assert.ErrorIs(t, err, flow.ErrCampaignNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, campaignID, sample()))

		require.NoError(t, store.Delete(ctx, campaignID), "Delete should not return error")

		_, err := store.Load(ctx, campaignID)
		assert.ErrorIs(t, err, flow.ErrCampaignNotFound, "Load after Delete should return ErrCampaignNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := campaignID + "-1"
		id2 := campaignID + "-2"
		_ = store.Save(ctx, id1, sample())
		_ = store.Save(ctx, id2, sample())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		campaigns, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, campaigns, id1)
		assert.Contains(t, campaigns, id2)
	})
}
