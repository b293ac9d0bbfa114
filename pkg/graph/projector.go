package graph

import "github.com/zapflowhq/zapflow/pkg/flow"

// Project derives a node's outgoing edges from its response table and
// automatic-next pointer: one edge per binding with a non-empty target
// (labelled with the binding key) plus one edge for AutoNext (labelled
// flow.EdgeLabelAutomatic).
//
// Bindings whose target does not exist (per the exists func) are skipped so
// the edge set never dangles, even when stale response references survive a
// node deletion. Edge IDs are deterministic, so projecting twice with
// unchanged inputs yields an identical set.
func Project(n *flow.Node, exists func(string) bool) []flow.Edge {
	var out []flow.Edge
	for _, r := range n.Responses {
		if r.Target == "" || !exists(r.Target) {
			continue
		}
		out = append(out, flow.Edge{
			ID:     flow.EdgeID(n.ID, r.Target, r.Key),
			Source: n.ID,
			Target: r.Target,
			Label:  r.Key,
		})
	}
	if n.AutoNext != "" && exists(n.AutoNext) {
		out = append(out, flow.Edge{
			ID:     flow.EdgeID(n.ID, n.AutoNext, flow.EdgeLabelAutomatic),
			Source: n.ID,
			Target: n.AutoNext,
			Label:  flow.EdgeLabelAutomatic,
		})
	}
	return out
}
