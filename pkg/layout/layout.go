// Package layout arranges flow nodes on a fixed grid, bucketed by group.
package layout

import "github.com/zapflowhq/zapflow/pkg/flow"

// Grid geometry. Horizontal/vertical gaps are the cell pitch; padding
// separates group buckets so they never overlap vertically.
const (
	Columns      = 3
	HGap         = 320.0
	VGap         = 180.0
	GroupPadding = 120.0
)

// Arrange computes a position for every node: the ungrouped bucket first,
// then each named group in the order given. Within a bucket, nodes keep
// their relative order and fill a Columns-wide grid; between buckets a
// running vertical offset advances past the bucket's rows plus padding.
//
// Arrange is pure: the same nodes and group order always produce the same
// positions, regardless of the nodes' current positions.
func Arrange(nodes []flow.Node, groups []string) map[string]flow.Position {
	buckets := make(map[string][]string)
	for _, n := range nodes {
		buckets[n.Group] = append(buckets[n.Group], n.ID)
	}

	// Ungrouped first, then named groups in first-observed order.
	order := append([]string{""}, groups...)

	positions := make(map[string]flow.Position, len(nodes))
	offsetY := 0.0
	for _, group := range order {
		ids := buckets[group]
		if len(ids) == 0 {
			continue
		}
		for i, id := range ids {
			positions[id] = flow.Position{
				X: float64(i%Columns) * HGap,
				Y: offsetY + float64(i/Columns)*VGap,
			}
		}
		rows := (len(ids) + Columns - 1) / Columns
		offsetY += float64(rows)*VGap + GroupPadding
	}
	return positions
}
