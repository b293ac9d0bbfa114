package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/pkg/adapters/memory"
	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/session"
)

func TestManager_AcquireSharesOneEditor(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	first, release1, err := mgr.Acquire(ctx, "verao")
	require.NoError(t, err)
	second, release2, err := mgr.Acquire(ctx, "verao")
	require.NoError(t, err)

	assert.Same(t, first, second, "concurrent holders must share the editor")
	assert.Equal(t, []string{"verao"}, mgr.Active())

	release1()
	assert.Equal(t, []string{"verao"}, mgr.Active(), "session survives while a holder remains")

	release2()
	assert.Empty(t, mgr.Active(), "last release drops the session")
}

func TestManager_ReleaseIsIdempotent(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, release1, err := mgr.Acquire(ctx, "c")
	require.NoError(t, err)
	_, release2, err := mgr.Acquire(ctx, "c")
	require.NoError(t, err)

	release1()
	release1() // double release must not steal the remaining holder's ref

	assert.Equal(t, []string{"c"}, mgr.Active())
	release2()
	assert.Empty(t, mgr.Active())
}

func TestManager_LoadsDocumentOnFirstAcquire(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "verao", &document.Document{
		Steps: map[string]document.Step{
			"inicio": {Message: "Olá!"},
			"fim":    {Message: "Tchau!"},
		},
	}))

	mgr := session.NewManager(store)
	editor, release, err := mgr.Acquire(ctx, "verao")
	require.NoError(t, err)
	defer release()

	assert.Equal(t, 2, editor.Model().Len())
}

func TestManager_MissingCampaignStartsEmpty(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())

	editor, release, err := mgr.Acquire(context.Background(), "nova")
	require.NoError(t, err)
	defer release()

	assert.Equal(t, 0, editor.Model().Len())
}

func TestManager_DistinctCampaignsGetDistinctEditors(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	a, releaseA, err := mgr.Acquire(ctx, "a")
	require.NoError(t, err)
	defer releaseA()
	b, releaseB, err := mgr.Acquire(ctx, "b")
	require.NoError(t, err)
	defer releaseB()

	assert.NotSame(t, a, b)
	assert.ElementsMatch(t, []string{"a", "b"}, mgr.Active())
}
