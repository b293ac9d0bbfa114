package graph_test

import (
	"strings"
	"testing"

	pgraph "github.com/zapflowhq/zapflow/internal/presentation/graph"
	"github.com/zapflowhq/zapflow/pkg/flow"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []flow.Node
		edges    []flow.Edge
		contains []string
	}{
		{
			name: "Entry Step Shape",
			nodes: []flow.Node{
				{ID: "inicio"},
				{ID: "start"},
			},
			contains: []string{
				"inicio((\"inicio\"))",
				"start((\"start\"))",
			},
		},
		{
			name: "Finalizar Shape",
			nodes: []flow.Node{
				{ID: "finalizar"},
			},
			contains: []string{
				"finalizar[[\"finalizar\"]]",
			},
		},
		{
			name: "Free Input Shape",
			nodes: []flow.Node{
				{ID: "nome", FreeInput: true},
			},
			contains: []string{
				"nome[/\"nome\"/]",
			},
		},
		{
			name: "Default Shape With Label",
			nodes: []flow.Node{
				{ID: "produtos", Label: "Nossos Produtos"},
			},
			contains: []string{
				"produtos[\"Nossos Produtos\"]",
			},
		},
		{
			name: "Automatic Dispatch Marker",
			nodes: []flow.Node{
				{ID: "aviso", Dispatch: flow.DispatchAutomatic},
			},
			contains: []string{
				"aviso[\"aviso ⚡\"]",
			},
		},
		{
			name: "ID Sanitization",
			nodes: []flow.Node{
				{ID: "passo-um"},
				{ID: "meu passo"},
			},
			contains: []string{
				"passo_um[\"passo-um\"]",
				"meu_passo[\"meu passo\"]",
			},
		},
		{
			name: "Labelled Edge",
			edges: []flow.Edge{
				{Source: "inicio", Target: "produtos", Label: "1"},
			},
			contains: []string{
				`inicio -- "1" --> produtos`,
			},
		},
		{
			name: "Automatic Edge Is Dotted",
			edges: []flow.Edge{
				{Source: "aviso", Target: "fim", Label: flow.EdgeLabelAutomatic},
			},
			contains: []string{
				"aviso -.-> fim",
			},
		},
		{
			name: "Label Escaping",
			nodes: []flow.Node{
				{ID: "q", Label: `Disse "sim"?`},
			},
			contains: []string{
				"q[\"Disse 'sim'?\"]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pgraph.GenerateMermaid(tt.nodes, tt.edges)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("GenerateMermaid() must open with the graph TD header, got:\n%v", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}
