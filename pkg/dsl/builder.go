// Package dsl provides a fluent API for constructing flow graphs in code,
// mainly for tests and embedded setups.
package dsl

import (
	"fmt"

	"github.com/zapflowhq/zapflow/pkg/graph"
)

// Builder manages the graph construction.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Step creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Step(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := newNodeBuilder(id, b)
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles the graph into a model, preserving declaration order.
func (b *Builder) Build() (*graph.Model, error) {
	m := graph.New()
	for _, id := range b.order {
		if err := m.AddNode(b.nodes[id].node); err != nil {
			return nil, fmt.Errorf("failed to build graph: %w", err)
		}
	}
	return m, nil
}
