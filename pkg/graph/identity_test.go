package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/graph"
)

func paymentFlow(t *testing.T) *graph.Model {
	t.Helper()
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{
		ID:      "inicio",
		Message: flow.TextMessage{Body: "Escolha:"},
		Responses: []flow.Response{
			{Key: "1", Target: "pagamento", Value: "Pagar agora"},
			{Key: "2", Target: "promo", Value: "Ver promoções"},
		},
	}))
	require.NoError(t, m.AddNode(flow.Node{
		ID:       "promo",
		AutoNext: "pagamento",
	}))
	require.NoError(t, m.AddNode(flow.Node{
		ID:        "pagamento",
		Responses: []flow.Response{{Key: "1", Target: "inicio", Value: "Voltar"}},
	}))
	return m
}

func TestRename_RewritesAllReferences(t *testing.T) {
	m := paymentFlow(t)

	require.NoError(t, m.Rename("pagamento", "checkout"))

	assert.False(t, m.Has("pagamento"))
	assert.True(t, m.Has("checkout"))

	inicio, _ := m.Node("inicio")
	assert.Equal(t, "checkout", inicio.Responses[0].Target, "response target must follow the rename")

	promo, _ := m.Node("promo")
	assert.Equal(t, "checkout", promo.AutoNext, "automatic-next must follow the rename")

	// Edges are re-derived against the new ID; nothing points at the old one.
	for _, e := range m.Edges() {
		assert.NotEqual(t, "pagamento", e.Source)
		assert.NotEqual(t, "pagamento", e.Target)
	}
	assert.Len(t, m.Edges(), 4)
}

func TestRename_SelfLoop(t *testing.T) {
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{
		ID:        "menu",
		Responses: []flow.Response{{Key: "1", Target: "menu", Value: "De novo"}},
	}))

	require.NoError(t, m.Rename("menu", "menu_principal"))

	n, _ := m.Node("menu_principal")
	assert.Equal(t, "menu_principal", n.Responses[0].Target)
}

func TestRename_LabelFollowsWhenDefaulted(t *testing.T) {
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{ID: "etapa_1"}))
	require.NoError(t, m.AddNode(flow.Node{ID: "etapa_2", Label: "Promoções"}))

	require.NoError(t, m.Rename("etapa_1", "boas_vindas"))
	n, _ := m.Node("boas_vindas")
	assert.Equal(t, "boas_vindas", n.Label, "a label equal to the old ID is treated as defaulted")

	require.NoError(t, m.Rename("etapa_2", "promo"))
	n2, _ := m.Node("promo")
	assert.Equal(t, "Promoções", n2.Label, "a custom label must survive the rename")
}

func TestRename_Preconditions(t *testing.T) {
	m := paymentFlow(t)

	t.Run("Empty new ID", func(t *testing.T) {
		assert.ErrorIs(t, m.Rename("inicio", ""), flow.ErrEmptyID)
	})

	t.Run("Same ID", func(t *testing.T) {
		assert.Error(t, m.Rename("inicio", "inicio"))
	})

	t.Run("Missing node", func(t *testing.T) {
		assert.ErrorIs(t, m.Rename("ghost", "novo"), flow.ErrNodeNotFound)
	})

	t.Run("Collision", func(t *testing.T) {
		err := m.Rename("inicio", "promo")
		assert.ErrorIs(t, err, flow.ErrNodeExists)

		// Nothing moved: the model is untouched on a rejected rename.
		assert.True(t, m.Has("inicio"))
		n, _ := m.Node("inicio")
		assert.Equal(t, "pagamento", n.Responses[0].Target)
	})
}

func TestGroupRegistry(t *testing.T) {
	r := graph.NewGroupRegistry()
	r.Add("vendas")
	r.Add("atendimento")
	r.Add("vendas") // duplicate
	r.Add("")       // empty

	assert.Equal(t, []string{"vendas", "atendimento"}, r.Names())

	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"vendas", "atendimento"}, r.Names(), "Names must return a copy")
}
