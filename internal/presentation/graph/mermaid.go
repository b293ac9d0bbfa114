package graph

import (
	"fmt"
	"strings"

	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
)

// EntryStepID is the conventional first step of a flow, drawn as a circle.
const EntryStepID = "inicio"

// GenerateMermaid produces a Mermaid flowchart syntax string from the
// model's nodes and derived edges. It applies semantic styling:
// - Entry step: ((Circle))
// - Finalizar fan-out: [[Subroutine]]
// - Free input: [/Parallelogram/]
// - Default: [Rectangle]
// Automatic edges are drawn dotted.
func GenerateMermaid(nodes []flow.Node, edges []flow.Edge) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.ID == EntryStepID || node.ID == "start":
			opener, closer = "((", "))"
		case node.ID == document.FinalizeStepID:
			opener, closer = "[[", "]]"
		case node.FreeInput:
			opener, closer = "[/", "/]"
		}

		label := node.DisplayLabel()
		if node.Dispatch == flow.DispatchAutomatic {
			label += " ⚡"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(label), closer))
	}

	for _, e := range edges {
		safeFrom := sanitizeMermaidID(e.Source)
		safeTo := sanitizeMermaidID(e.Target)

		arrow := "-->"
		if e.Automatic() {
			arrow = "-.->"
		} else if e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeMermaidLabel(e.Label))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
	}

	return sb.String()
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
