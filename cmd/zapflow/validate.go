package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapflowhq/zapflow/internal/validator"
	"github.com/zapflowhq/zapflow/pkg/document"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the flow graph for consistency",
	Long:  `Crawls the graph starting from the entry step and reports dead links or unreachable steps.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Flow is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("start", "inicio", "Entry step to crawl from")
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, _, err := loadDocument(cmd, args)
	if err != nil {
		return err
	}

	start, _ := cmd.Flags().GetString("start")

	model := document.NewConverter().Load(doc)
	return validator.ValidateGraph(model, start)
}
