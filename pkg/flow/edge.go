package flow

import "fmt"

// EdgeLabelAutomatic marks edges projected from a node's AutoNext pointer.
const EdgeLabelAutomatic = "automatic"

// Edge is a derived, non-authoritative projection of a response binding or
// automatic-next pointer. Edges are recomputed from their source node and
// are never edited directly.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Automatic reports whether the edge was projected from AutoNext.
func (e Edge) Automatic() bool { return e.Label == EdgeLabelAutomatic }

// EdgeID builds the deterministic identifier for an edge. Projecting the
// same (source, target, label) twice always yields the same ID, which makes
// re-projection idempotent.
func EdgeID(source, target, label string) string {
	return fmt.Sprintf("%s=>%s#%s", source, target, label)
}
