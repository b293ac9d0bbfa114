package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapflowhq/zapflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of zapflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zapflow version %s\n", strings.TrimSpace(zapflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
