package main

import (
	"fmt"

	"github.com/aretw0/rechat"
	"github.com/aretw0/rechat/internal/presentation/graph"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the mode machine visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the conversation modes and the commands
that move between them. With --session the session's current mode is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var overlay *graph.GraphOverlay

		if sessionID, _ := cmd.Flags().GetString("session"); sessionID != "" {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			state, err := app.Sessions.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", sessionID, err)
			}
			overlay = &graph.GraphOverlay{
				VisitedModes: []domain.Mode{domain.ModeCommand},
				CurrentMode:  state.Mode(),
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(rechat.New().Rules(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("session", "s", "", "Highlight the current mode of this session")
}
