package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pgraph "github.com/zapflowhq/zapflow/internal/presentation/graph"
	"github.com/zapflowhq/zapflow/pkg/document"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the flow graph visualization",
	Long:  `Reads the flow document and outputs a Mermaid diagram (graph TD) representing the flow logic.`,
	Run: func(cmd *cobra.Command, args []string) {
		doc, _, err := loadDocument(cmd, args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		model := document.NewConverter().Load(doc)
		fmt.Print(pgraph.GenerateMermaid(model.Nodes(), model.Edges()))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
