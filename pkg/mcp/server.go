package mcp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/emqx-contrib/emqx-mcp-server/pkg/emqx"
	"github.com/emqx-contrib/emqx-mcp-server/pkg/logging"
)

// serverName identifies this MCP server to connecting clients.
const serverName = "emqx-mcp-server"

// BrokerClient is the slice of the EMQX client the tool layer drives.
// Tool handlers are written against this interface so tests can swap in
// a fake broker.
type BrokerClient interface {
	Publish(topic, payload string, qos int, retain bool) emqx.Result
	ListClients(params map[string]string) emqx.Result
	GetClientInfo(clientID string) emqx.Result
	KickClient(clientID string) emqx.Result
	Subscribe(topic string, window time.Duration, maxMessages int) emqx.Result
	Close()
}

// Interface compliance check.
var _ BrokerClient = (*emqx.Client)(nil)

// Server exposes broker operations as MCP tools over stdio. All tools
// share one broker client, which is closed when serving stops.
type Server struct {
	mcp    *server.MCPServer
	client BrokerClient
	log    *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used by the server and tool handlers.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates an MCP server wired to the given broker client and
// registers all broker tools.
func NewServer(client BrokerClient, version string, opts ...ServerOption) *Server {
	s := &Server{
		client: client,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcp = server.NewMCPServer(serverName, version)

	s.registerMessageTools()
	s.registerClientTools()
	return s
}

// Run serves MCP requests on stdin/stdout until the peer disconnects.
func (s *Server) Run() error {
	s.log.Info("starting stdio MCP server")
	defer func() {
		s.client.Close()
		s.log.Info("stdio MCP server stopped")
	}()
	return server.ServeStdio(s.mcp)
}

// renderResult converts a broker Result into an MCP tool result: error
// Results become error tool results, success Results are encoded as JSON.
func (s *Server) renderResult(result emqx.Result) (*mcp.CallToolResult, error) {
	if result.IsError() {
		return mcp.NewToolResultError(result.Err()), nil
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
