package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zapflowhq/zapflow/internal/presentation/tui"
	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview the flow in the terminal",
	Long:  `Renders a readable summary of every step: its message, its response bindings and where they lead.`,
	Run: func(cmd *cobra.Command, args []string) {
		doc, path, err := loadDocument(cmd, args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		model := document.NewConverter().Load(doc)
		markdown := flowMarkdown(path, model.Nodes())

		// Pipe-friendly: raw markdown when stdout is not a terminal.
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(markdown)
			return
		}

		tui.PrintBanner()
		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			fmt.Print(markdown)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func flowMarkdown(path string, nodes []flow.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Flow: %s\n\n", path)
	fmt.Fprintf(&b, "%d steps\n\n", len(nodes))

	for _, n := range nodes {
		fmt.Fprintf(&b, "## %s\n\n", n.DisplayLabel())
		if n.Group != "" {
			fmt.Fprintf(&b, "*Group: %s*\n\n", n.Group)
		}
		if n.Message != nil {
			if preview := n.Message.Preview(); preview != "" {
				fmt.Fprintf(&b, "> %s\n\n", preview)
			}
		}
		for _, r := range n.Responses {
			if r.Target != "" {
				fmt.Fprintf(&b, "- **%s** → `%s`\n", r.Value, r.Target)
			} else {
				fmt.Fprintf(&b, "- **%s**\n", r.Value)
			}
		}
		if n.AutoNext != "" {
			fmt.Fprintf(&b, "- *then* → `%s`\n", n.AutoNext)
		}
		b.WriteString("\n")
	}
	return b.String()
}
