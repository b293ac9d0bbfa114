package validator

import (
	"fmt"
	"strings"

	"github.com/zapflowhq/zapflow/pkg/graph"
)

// ValidateGraph checks for broken links and unreachable nodes starting from
// startNodeID. Broken links are response bindings or automatic-next
// pointers that name a node absent from the model; unreachable nodes are
// never visited by the crawl.
func ValidateGraph(m *graph.Model, startNodeID string) error {
	if _, ok := m.Node(startNodeID); !ok {
		return fmt.Errorf("start node '%s' not found", startNodeID)
	}

	visited := make(map[string]bool)
	queue := []string{startNodeID}

	var errs []string

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		node, ok := m.Node(currentID)
		if !ok {
			errs = append(errs, fmt.Sprintf("Missing node: '%s'", currentID))
			continue
		}

		targets := make([]string, 0, len(node.Responses)+1)
		for _, r := range node.Responses {
			if r.Target != "" {
				targets = append(targets, r.Target)
			}
		}
		if node.AutoNext != "" {
			targets = append(targets, node.AutoNext)
		}

		for _, target := range targets {
			if !m.Has(target) {
				errs = append(errs, fmt.Sprintf("Broken link: '%s' -> '%s'", currentID, target))
				continue
			}
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	for _, node := range m.Nodes() {
		if !visited[node.ID] {
			errs = append(errs, fmt.Sprintf("Unreachable node: '%s'", node.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}

	return nil
}
