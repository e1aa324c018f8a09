package main

import (
	"github.com/aretw0/rechat/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive chat session",
	Long: `Reads chat lines from standard input and prints the resulting actions.
With --session the conversation is persisted and resumed on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		jsonMode, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		err = cli.RunSession(sigCtx, app, cli.RunOptions{
			SessionID: sessionID,
			JSON:      jsonMode,
			Quiet:     quiet,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
		})
		sigCtx.LogSignal(app.Logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("session", "s", "", "Session ID to create or resume (random when empty)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON output)")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
