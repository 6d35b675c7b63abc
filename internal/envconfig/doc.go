// Package envconfig loads configuration for the EMQX MCP server.
//
// It implements a layered configuration with the following precedence
// (highest to lowest):
//
//  1. Command-line flags (applied by the CLI after loading)
//  2. Environment variables (EMQX_* / EMQX_MCP_* prefix)
//  3. YAML config file (--config flag or EMQX_MCP_CONFIG)
//  4. Default values
//
// The broker client itself never reads the environment; the CLI loads a
// Config here, validates it, and passes the credentials to pkg/emqx at
// construction time.
package envconfig
