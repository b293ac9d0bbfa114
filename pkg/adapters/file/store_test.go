package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/pkg/adapters/file"
	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunDocumentStoreContract(t, store)
}

func TestFileStore_WritesOneFilePerCampaign(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	doc := &document.Document{
		Steps: map[string]document.Step{"inicio": {Message: "Olá!"}},
	}
	require.NoError(t, store.Save(ctx, "verao-2026", doc))

	data, err := os.ReadFile(filepath.Join(dir, "verao-2026.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Olá!")
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "c1", &document.Document{}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	campaigns, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, campaigns)
}

func TestFileStore_DefaultBasePath(t *testing.T) {
	store := file.NewStore("")
	assert.Equal(t, filepath.Join(".zapflow", "campaigns"), store.BasePath)
}
