// Package cli implements the emqx-mcp-server command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands.
	configPath string
	logLevel   string
	logFormat  string

	// Version is injected during build.
	Version = "dev"
	// Commit is injected during build.
	Commit = "none"
	// BuildDate is injected during build.
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "emqx-mcp-server",
	Short: "MCP server for operating an EMQX MQTT broker",
	Long: `emqx-mcp-server exposes an EMQX broker's HTTP management API as MCP tools,
letting tool-calling agents publish MQTT messages, manage connected clients,
and observe live traffic on a topic.

Credentials are read from the EMQX_API_URL, EMQX_API_KEY and EMQX_API_SECRET
environment variables, or from a YAML config file passed via --config.`,
	// Running without a subcommand starts the server, which is the common
	// case when registered in an MCP client configuration.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
	SilenceUsage:  true,
	SilenceErrors: true, // errors are printed once in Execute()
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")
}
