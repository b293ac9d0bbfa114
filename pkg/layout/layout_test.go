package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/layout"
)

func TestArrange_UngroupedGrid(t *testing.T) {
	nodes := []flow.Node{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}

	positions := layout.Arrange(nodes, nil)
	require.Len(t, positions, 5)

	assert.Equal(t, flow.Position{X: 0, Y: 0}, positions["a"])
	assert.Equal(t, flow.Position{X: 320, Y: 0}, positions["b"])
	assert.Equal(t, flow.Position{X: 640, Y: 0}, positions["c"])
	assert.Equal(t, flow.Position{X: 0, Y: 180}, positions["d"], "fourth node wraps to the second row")
	assert.Equal(t, flow.Position{X: 320, Y: 180}, positions["e"])
}

func TestArrange_GroupBands(t *testing.T) {
	nodes := []flow.Node{
		{ID: "inicio"},
		{ID: "produtos", Group: "vendas"},
		{ID: "precos", Group: "vendas"},
		{ID: "suporte", Group: "atendimento"},
	}

	positions := layout.Arrange(nodes, []string{"vendas", "atendimento"})

	// Ungrouped band: one row at offset 0.
	assert.Equal(t, flow.Position{X: 0, Y: 0}, positions["inicio"])

	// vendas band starts after one row plus padding.
	vendasY := layout.VGap + layout.GroupPadding
	assert.Equal(t, flow.Position{X: 0, Y: vendasY}, positions["produtos"])
	assert.Equal(t, flow.Position{X: 320, Y: vendasY}, positions["precos"])

	// atendimento band starts after the vendas row plus padding.
	atendimentoY := vendasY + layout.VGap + layout.GroupPadding
	assert.Equal(t, flow.Position{X: 0, Y: atendimentoY}, positions["suporte"])
}

func TestArrange_Deterministic(t *testing.T) {
	nodes := []flow.Node{
		{ID: "a", Position: flow.Position{X: 999, Y: 999}},
		{ID: "b", Group: "g"},
		{ID: "c", Group: "g"},
	}
	groups := []string{"g"}

	first := layout.Arrange(nodes, groups)
	second := layout.Arrange(nodes, groups)
	assert.Equal(t, first, second)
	assert.Equal(t, flow.Position{X: 0, Y: 0}, first["a"], "current positions are ignored")
}

func TestArrange_EmptyGroupSkipped(t *testing.T) {
	nodes := []flow.Node{{ID: "a", Group: "real"}}

	positions := layout.Arrange(nodes, []string{"fantasma", "real"})
	assert.Equal(t, flow.Position{X: 0, Y: 0}, positions["a"], "empty buckets add no vertical offset")
}
