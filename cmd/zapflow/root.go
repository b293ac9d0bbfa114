package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapflowhq/zapflow/pkg/document"
)

var rootCmd = &cobra.Command{
	Use:   "zapflow",
	Short: "ZapFlow is a conversation flow editor for WhatsApp campaigns",
	Long:  `ZapFlow edits, validates and serves campaign flows stored as step scripts (JSON documents).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "flow.json", "Path to the flow document")
}

// loadDocument reads the flow document named by --file, or the first
// positional argument when --file was not set.
func loadDocument(cmd *cobra.Command, args []string) (*document.Document, string, error) {
	path, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("file") && len(args) > 0 {
		path = args[0]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read flow document: %w", err)
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, path, err
	}
	return doc, path, nil
}
