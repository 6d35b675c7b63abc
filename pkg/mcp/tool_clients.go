package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// maxListLimit is the largest page size the management API accepts.
const maxListLimit = 10000

// listClientFilters are optional list_mqtt_clients arguments forwarded to
// the broker verbatim as query parameters.
var listClientFilters = []string{
	"node",
	"clientid",
	"username",
	"ip_address",
	"conn_state",
	"clean_start",
	"proto_ver",
	"like_clientid",
	"like_username",
	"like_ip_address",
}

// registerClientTools registers the client management tools.
func (s *Server) registerClientTools() {
	listTool := mcp.NewTool("list_mqtt_clients",
		mcp.WithDescription("List MQTT clients connected to your EMQX cluster"),
		mcp.WithNumber("page",
			mcp.DefaultNumber(1),
			mcp.Description("Page number"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Results per page, max 10000"),
		),
		mcp.WithString("node", mcp.Description("Filter by node name")),
		mcp.WithString("clientid", mcp.Description("Filter by exact client ID")),
		mcp.WithString("username", mcp.Description("Filter by exact username")),
		mcp.WithString("ip_address", mcp.Description("Filter by client IP address")),
		mcp.WithString("conn_state",
			mcp.Description("Filter by connection state"),
			mcp.Enum("connected", "idle", "disconnected"),
		),
		mcp.WithBoolean("clean_start", mcp.Description("Filter by clean start flag")),
		mcp.WithNumber("proto_ver", mcp.Description("Filter by MQTT protocol version")),
		mcp.WithString("like_clientid", mcp.Description("Fuzzy search by client ID pattern")),
		mcp.WithString("like_username", mcp.Description("Fuzzy search by username pattern")),
		mcp.WithString("like_ip_address", mcp.Description("Fuzzy search by IP address pattern")),
	)
	s.mcp.AddTool(listTool, s.handleListClients)

	getTool := mcp.NewTool("get_mqtt_client",
		mcp.WithDescription("Get detailed information about a specific MQTT client by client ID"),
		mcp.WithString("clientid",
			mcp.Required(),
			mcp.Description("Exact client ID to look up"),
		),
	)
	s.mcp.AddTool(getTool, s.handleGetClient)

	kickTool := mcp.NewTool("kick_mqtt_client",
		mcp.WithDescription("Disconnect an MQTT client from your EMQX cluster by client ID"),
		mcp.WithString("clientid",
			mcp.Required(),
			mcp.Description("Exact client ID to disconnect"),
		),
	)
	s.mcp.AddTool(kickTool, s.handleKickClient)
}

func (s *Server) handleListClients(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := request.GetInt("page", 1)
	if page < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid page: %d. Must be at least 1", page)), nil
	}
	limit := request.GetInt("limit", 10)
	if limit < 1 || limit > maxListLimit {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Invalid limit: %d. Must be between 1 and %d", limit, maxListLimit)), nil
	}

	params := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
	if args, ok := request.GetRawArguments().(map[string]any); ok {
		for _, name := range listClientFilters {
			if value, present := args[name]; present {
				params[name] = fmt.Sprintf("%v", value)
			}
		}
	}

	s.log.Info("handling list clients request", "page", page, "limit", limit)
	return s.renderResult(s.client.ListClients(params))
}

func (s *Server) handleGetClient(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := request.RequireString("clientid")
	if err != nil || clientID == "" {
		return mcp.NewToolResultError("Missing required parameter: clientid"), nil
	}

	s.log.Info("handling get client request", "clientid", clientID)
	return s.renderResult(s.client.GetClientInfo(clientID))
}

func (s *Server) handleKickClient(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := request.RequireString("clientid")
	if err != nil || clientID == "" {
		return mcp.NewToolResultError("Missing required parameter: clientid"), nil
	}

	s.log.Info("handling kick client request", "clientid", clientID)
	return s.renderResult(s.client.KickClient(clientID))
}
