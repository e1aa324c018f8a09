package main

import (
	"fmt"

	"github.com/aretw0/rechat/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts rechat as an MCP Server so agents can interpret chat lines as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		srv := cli.NewMCPServer(app)

		switch transport {
		case "stdio":
			// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
			app.Logger.Info("Starting rechat MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			app.Logger.Info("Starting rechat MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(sigCtx, port); err != nil {
				return err
			}
			sigCtx.LogSignal(app.Logger)
			app.Logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport to use (stdio, sse)")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port for SSE server")
}
