// Package graph holds the in-memory authoritative store for one editing
// session: nodes, their derived edge projection, and group membership.
package graph

import (
	"fmt"

	"github.com/zapflowhq/zapflow/pkg/flow"
)

// Model is the authoritative node store. Edges are a projection derived
// from each node's response table and automatic-next pointer; they are
// recomputed on every mutation that touches them and never edited directly.
//
// The model is created when a document is loaded and discarded when the
// editing session ends. It is single-writer: the command bus serializes all
// mutations (see pkg/command).
type Model struct {
	nodes map[string]*flow.Node
	order []string

	// edges keyed by source node, in projection order.
	edges map[string][]flow.Edge

	groups *GroupRegistry
}

// New creates an empty model.
func New() *Model {
	return &Model{
		nodes:  make(map[string]*flow.Node),
		edges:  make(map[string][]flow.Edge),
		groups: NewGroupRegistry(),
	}
}

// Len returns the number of nodes.
func (m *Model) Len() int { return len(m.order) }

// Has reports whether a node with the given ID exists.
func (m *Model) Has(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// Node returns a copy of the node with the given ID.
func (m *Model) Node(id string) (flow.Node, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return flow.Node{}, false
	}
	return *n.Clone(), true
}

// Nodes returns copies of all nodes in insertion order. Serialization
// follows this order.
func (m *Model) Nodes() []flow.Node {
	out := make([]flow.Node, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.nodes[id].Clone())
	}
	return out
}

// Edges returns the full derived edge set, grouped by source node in
// insertion order.
func (m *Model) Edges() []flow.Edge {
	var out []flow.Edge
	for _, id := range m.order {
		out = append(out, m.edges[id]...)
	}
	return out
}

// EdgesFrom returns the outgoing edges of one node.
func (m *Model) EdgesFrom(id string) []flow.Edge {
	es := m.edges[id]
	out := make([]flow.Edge, len(es))
	copy(out, es)
	return out
}

// AddNode inserts a new node. The node's group, if any, is registered.
func (m *Model) AddNode(n flow.Node) error {
	if n.ID == "" {
		return flow.ErrEmptyID
	}
	if _, ok := m.nodes[n.ID]; ok {
		return fmt.Errorf("%w: %s", flow.ErrNodeExists, n.ID)
	}
	stored := n.Clone()
	m.nodes[n.ID] = stored
	m.order = append(m.order, n.ID)
	m.groups.Add(stored.Group)
	// A new node can be the target other nodes were already pointing at
	// (forward references during load, re-creation after a delete), so the
	// whole projection is refreshed, not just the new node's.
	m.reindex()
	return nil
}

// UpdateNode applies fn to the node with the given ID, then re-projects its
// outgoing edges and refreshes group bookkeeping. fn must not change the
// node's ID; use Rename for that.
func (m *Model) UpdateNode(id string, fn func(*flow.Node)) error {
	n, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", flow.ErrNodeNotFound, id)
	}
	fn(n)
	n.ID = id
	m.groups.Add(n.Group)
	m.project(n)
	return nil
}

// RemoveNode deletes a node and every edge whose source or target is the
// node. Other nodes' response bindings that pointed at the node are kept
// as-is for document compatibility; the projector simply stops
// materializing edges for them (see reindex).
func (m *Model) RemoveNode(id string) bool {
	if _, ok := m.nodes[id]; !ok {
		return false
	}
	delete(m.nodes, id)
	delete(m.edges, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	for src, es := range m.edges {
		kept := es[:0]
		for _, e := range es {
			if e.Target != id {
				kept = append(kept, e)
			}
		}
		m.edges[src] = kept
	}
	return true
}

// AssignGroup sets the node's group. An empty name clears membership.
func (m *Model) AssignGroup(id, group string) error {
	return m.UpdateNode(id, func(n *flow.Node) {
		n.Group = group
	})
}

// MembersOf returns the IDs of the nodes whose group equals name, in
// insertion order. The registry holds no membership of its own; nodes are
// the single source of truth.
func (m *Model) MembersOf(name string) []string {
	var out []string
	for _, id := range m.order {
		if m.nodes[id].Group == name && name != "" {
			out = append(out, id)
		}
	}
	return out
}

// GroupNames returns group names in first-observed order.
func (m *Model) GroupNames() []string {
	return m.groups.Names()
}

// project recomputes one node's outgoing edges.
func (m *Model) project(n *flow.Node) {
	m.edges[n.ID] = Project(n, m.Has)
}

// reindex re-projects every node. Used after operations that change the
// set of valid edge targets (add, rename).
func (m *Model) reindex() {
	for _, id := range m.order {
		m.project(m.nodes[id])
	}
}
