package main

import (
	"fmt"

	"github.com/aretw0/rechat"
	"github.com/aretw0/rechat/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and the command table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := validator.ValidateRules(rechat.New().Rules()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK (store: %s)\n", cfg.Store)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
