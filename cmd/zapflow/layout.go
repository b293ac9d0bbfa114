package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/layout"
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Recompute node positions on the grouped grid",
	Long: `Arranges every step of the flow on a grid, one band per group, and
writes the new positions back into the document's metadata.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLayout(cmd, args); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	doc, path, err := loadDocument(cmd, args)
	if err != nil {
		return err
	}

	converter := document.NewConverter()
	model := converter.Load(doc)

	positions := layout.Arrange(model.Nodes(), model.GroupNames())
	for id, pos := range positions {
		p := pos
		_ = model.UpdateNode(id, func(n *flow.Node) {
			n.Position = p
		})
	}

	out := converter.Serialize(model)
	out.OffHoursMessage = doc.OffHoursMessage

	data, err := out.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write flow document: %w", err)
	}

	fmt.Printf("Arranged %d steps in %s\n", len(positions), path)
	return nil
}
