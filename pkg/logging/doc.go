// Package logging provides structured logging configuration for the
// EMQX MCP server.
//
// This package wraps log/slog to keep logging consistent across the
// broker client, the MCP tool layer, and the CLI. Because the MCP server
// speaks its protocol on stdout, all logging goes to stderr by default.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("message published", "topic", topic)
//	logger.Error("broker unreachable", "error", err)
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// # Integration
//
// Components accept a *slog.Logger in their constructor. When no logger
// is provided, they fall back to logging.Nop().
package logging
