package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/zapflowhq/zapflow/pkg/adapters/redis"
	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/ports"
)

func sampleDoc() *document.Document {
	return &document.Document{
		Steps: map[string]document.Step{
			"inicio": {Message: "Olá!"},
		},
	}
}

func TestRedisStore_Contract(t *testing.T) {
	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	// Initialize client
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	// Run contract
	store := redis.NewFromClient(client)
	ports.RunDocumentStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	// Create store with 1s TTL
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	campaignID := "campaign-ttl"

	// 1. Save
	err = store.Save(ctx, campaignID, sampleDoc())
	assert.NoError(t, err)

	// 2. Verify List (immediately)
	campaigns, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, campaigns, campaignID)

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	// 4. Verify Load (should fail)
	_, err = store.Load(ctx, campaignID)
	assert.ErrorIs(t, err, flow.ErrCampaignNotFound)

	// 5. Verify List (lazily cleaned up)
	// The prune score comes from time.Now(), so we wait past the TTL in
	// real time too.
	time.Sleep(1200 * time.Millisecond)

	campaigns, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, campaigns)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	// Custom Prefix
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	campaignID := "minha-campanha"

	err = store.Save(ctx, campaignID, sampleDoc())
	assert.NoError(t, err)

	// Key should be "custom:app:minha-campanha"
	exists := mr.Exists("custom:app:minha-campanha")
	assert.True(t, exists, "Expected key with custom prefix to exist")

	// Index should be "custom:app:index"
	existsIndex := mr.Exists("custom:app:index")
	assert.True(t, existsIndex, "Expected index with custom prefix to exist")

	// Verify List works
	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, campaignID)
}
