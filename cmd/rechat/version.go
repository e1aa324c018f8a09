package main

import (
	"fmt"

	"github.com/aretw0/rechat"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rechat",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rechat version %s\n", rechat.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
