package main

import (
	"fmt"
	"net"

	"github.com/aretw0/rechat/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the interpreter over HTTP: stateless turns on POST /turn, stored
sessions under /sessions and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if cmd.Flags().Changed("port") {
			app.Config.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}
		if noMetrics, _ := cmd.Flags().GetBool("no-metrics"); noMetrics {
			app.Config.HTTP.Metrics = false
		}

		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.Config.HTTP.Port))
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		fmt.Fprintf(cmd.OutOrStdout(), "Starting rechat server on %s\n", ln.Addr())
		err = cli.Serve(sigCtx, app, ln)
		sigCtx.LogSignal(app.Logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Bool("no-metrics", false, "Do not expose /metrics")
}
