package cli

import (
	"github.com/spf13/cobra"

	"github.com/emqx-contrib/emqx-mcp-server/internal/envconfig"
	"github.com/emqx-contrib/emqx-mcp-server/pkg/emqx"
	"github.com/emqx-contrib/emqx-mcp-server/pkg/logging"
	"github.com/emqx-contrib/emqx-mcp-server/pkg/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe loads and validates configuration, builds the broker client,
// and serves MCP on stdio until the peer disconnects.
func runServe() error {
	cfg, err := envconfig.Load(configPath)
	if err != nil {
		return err
	}
	// Flags win over environment and file values.
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})
	logger.Info("starting emqx-mcp-server", "version", Version, "api_url", cfg.APIURL)

	client := emqx.NewClient(emqx.Config{
		APIURL:    cfg.APIURL,
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
	}, emqx.WithLogger(logger))

	server := mcp.NewServer(client, Version, mcp.WithLogger(logger))
	return server.Run()
}
