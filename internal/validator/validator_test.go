package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/internal/validator"
	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/graph"
)

func TestValidateGraph_Valid(t *testing.T) {
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{
		ID:        "inicio",
		Responses: []flow.Response{{Key: "1", Target: "fim", Value: "Sair"}},
	}))
	require.NoError(t, m.AddNode(flow.Node{ID: "fim"}))

	assert.NoError(t, validator.ValidateGraph(m, "inicio"))
}

func TestValidateGraph_StartMissing(t *testing.T) {
	m := graph.New()
	err := validator.ValidateGraph(m, "inicio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start node 'inicio' not found")
}

func TestValidateGraph_BrokenLink(t *testing.T) {
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{
		ID:        "inicio",
		Responses: []flow.Response{{Key: "1", Target: "fantasma", Value: "???"}},
	}))

	err := validator.ValidateGraph(m, "inicio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken link: 'inicio' -> 'fantasma'")
}

func TestValidateGraph_BrokenAutoNext(t *testing.T) {
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{ID: "inicio", AutoNext: "sumiu"}))

	err := validator.ValidateGraph(m, "inicio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken link: 'inicio' -> 'sumiu'")
}

func TestValidateGraph_Unreachable(t *testing.T) {
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{ID: "inicio"}))
	require.NoError(t, m.AddNode(flow.Node{ID: "ilha"}))

	err := validator.ValidateGraph(m, "inicio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unreachable node: 'ilha'")
}

func TestValidateGraph_CycleTerminates(t *testing.T) {
	m := graph.New()
	require.NoError(t, m.AddNode(flow.Node{
		ID:        "a",
		Responses: []flow.Response{{Key: "1", Target: "b", Value: "b"}},
	}))
	require.NoError(t, m.AddNode(flow.Node{
		ID:        "b",
		Responses: []flow.Response{{Key: "1", Target: "a", Value: "a"}},
	}))

	assert.NoError(t, validator.ValidateGraph(m, "a"))
}
