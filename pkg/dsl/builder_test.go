package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/pkg/dsl"
	"github.com/zapflowhq/zapflow/pkg/flow"
)

func TestBuilder_BuildsFlow(t *testing.T) {
	b := dsl.New()
	b.Step("inicio").
		Text("Olá! Escolha:").
		Respond("1", "produtos", "Ver produtos").
		Display("2", "Nada, obrigado").
		NoMatch("Não entendi.")
	b.Step("produtos").
		Image("https://cdn.example.com/cat.png", "Catálogo").
		Then("inicio").
		Group("vendas")
	b.Step("nome").
		Text("Seu nome?").
		FreeInput("nome", "inicio")

	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())

	inicio, _ := m.Node("inicio")
	assert.Equal(t, flow.TextMessage{Body: "Olá! Escolha:"}, inicio.Message)
	require.Len(t, inicio.Responses, 2)
	assert.Equal(t, "produtos", inicio.Responses[0].Target)
	assert.Empty(t, inicio.Responses[1].Target)
	assert.Equal(t, "Não entendi.", inicio.NoMatchMessage)

	produtos, _ := m.Node("produtos")
	assert.Equal(t, flow.MediaMessage{URL: "https://cdn.example.com/cat.png", Caption: "Catálogo"}, produtos.Message)
	assert.Equal(t, "inicio", produtos.AutoNext)
	assert.Equal(t, "vendas", produtos.Group)

	nome, _ := m.Node("nome")
	assert.True(t, nome.FreeInput)
	assert.Equal(t, "nome", nome.ResponseLabel)

	// inicio->produtos, produtos-.->inicio, nome->inicio
	assert.Len(t, m.Edges(), 3)
}

func TestBuilder_StepReturnsSameBuilder(t *testing.T) {
	b := dsl.New()
	first := b.Step("inicio").Text("v1")
	second := b.Step("inicio").Text("v2")

	assert.Same(t, first, second)

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	n, _ := m.Node("inicio")
	assert.Equal(t, flow.TextMessage{Body: "v2"}, n.Message)
}

func TestBuilder_DeclarationOrderPreserved(t *testing.T) {
	b := dsl.New()
	b.Step("zulu")
	b.Step("alpha")
	b.Step("meio")

	m, err := b.Build()
	require.NoError(t, err)

	nodes := m.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "zulu", nodes[0].ID)
	assert.Equal(t, "alpha", nodes[1].ID)
	assert.Equal(t, "meio", nodes[2].ID)
}

func TestBuilder_PositionAndAutomatic(t *testing.T) {
	b := dsl.New()
	b.Step("aviso").At(100, 200).Automatic()

	m, err := b.Build()
	require.NoError(t, err)

	n, _ := m.Node("aviso")
	assert.Equal(t, flow.Position{X: 100, Y: 200}, n.Position)
	assert.Equal(t, flow.DispatchAutomatic, n.Dispatch)
}
