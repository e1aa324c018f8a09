package main

import (
	"fmt"
	"os"

	"github.com/aretw0/rechat/internal/cli"
	"github.com/aretw0/rechat/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rechat",
	Short: "rechat is a stateless chat command interpreter",
	Long: `rechat interprets chat lines (\join #channel, \dm @user, messages) against a
conversation state and reports the resulting action and successor state.
It runs as an interactive REPL, an HTTP API or an MCP server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", config.DefaultPath, "Path to the YAML config file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("store", "", "Session store: memory, file, redis")
	pf.String("session-dir", "", "Directory used by the file store")
	pf.String("redis-addr", "", "Redis address used by the redis store")
}

// loadConfig layers the config file, RECHAT_* variables and explicit flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("session-dir") {
		cfg.SessionDir, _ = flags.GetString("session-dir")
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	return cfg, cfg.Validate()
}

func newApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg)
}
