package graph

import (
	"fmt"

	"github.com/zapflowhq/zapflow/pkg/flow"
)

// Rename changes a node's ID and rewrites every reference to the old ID
// (response targets and automatic-next pointers across the whole graph)
// in one operation. No intermediate state is observable: all preconditions
// are checked before any mutation, the reference rewrite is a single pass
// over the full node list, and edges are recomputed only afterwards.
//
// This is the only code allowed to rewrite Target/AutoNext identity
// references; command handlers go through it.
func (m *Model) Rename(oldID, newID string) error {
	if newID == "" {
		return flow.ErrEmptyID
	}
	if newID == oldID {
		return fmt.Errorf("new id equals current id: %s", oldID)
	}
	node, ok := m.nodes[oldID]
	if !ok {
		return fmt.Errorf("%w: %s", flow.ErrNodeNotFound, oldID)
	}
	if _, ok := m.nodes[newID]; ok {
		return fmt.Errorf("%w: %s", flow.ErrNodeExists, newID)
	}

	renamed := node.Clone()
	renamed.ID = newID
	if renamed.Label == "" || renamed.Label == oldID {
		renamed.Label = newID
	}

	// Single pass: rewrite references in every node, the renamed clone
	// included (self-loops), before touching the edge projection.
	rewrite := func(n *flow.Node) {
		for i := range n.Responses {
			if n.Responses[i].Target == oldID {
				n.Responses[i].Target = newID
			}
		}
		if n.AutoNext == oldID {
			n.AutoNext = newID
		}
	}
	rewrite(renamed)
	for _, id := range m.order {
		if id != oldID {
			rewrite(m.nodes[id])
		}
	}

	delete(m.nodes, oldID)
	delete(m.edges, oldID)
	m.nodes[newID] = renamed
	for i, id := range m.order {
		if id == oldID {
			m.order[i] = newID
			break
		}
	}

	m.reindex()
	return nil
}
