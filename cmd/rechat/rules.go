package main

import (
	"fmt"
	"os"

	"github.com/aretw0/rechat"
	"github.com/aretw0/rechat/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the command table",
	Long: `Prints every command with the mode it is legal in, the argument it expects and
the mode it leads to. Output is styled on a terminal; --raw prints the markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := tui.RulesMarkdown(rechat.New().Rules())

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		}

		style := tui.StyleNoTTY
		if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			style = tui.StyleAuto
		}
		render, err := tui.NewRenderer(style)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := render(doc)
		if err != nil {
			return fmt.Errorf("failed to render rules: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().Bool("raw", false, "Print plain markdown")
}
