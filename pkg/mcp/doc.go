// Package mcp exposes EMQX broker operations as MCP tools.
//
// The server speaks the Model Context Protocol over stdio so that
// tool-calling agents can operate the broker: publish messages, list,
// inspect and disconnect clients, and observe live traffic on a topic.
//
// This layer is thin glue around pkg/emqx. It owns required-field checks,
// defaulting, and range validation of tool arguments, then delegates to
// the broker client with already-validated primitives and renders the
// client's uniform Result back to the MCP caller. Error-shaped Results
// become MCP error results; success Results are returned as JSON text.
package mcp
