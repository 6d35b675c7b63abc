package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// Bounds for the subscribe tool. The collection window and message cap
// keep a single tool call from holding the stream open indefinitely.
const (
	minDuration     = 1
	maxDuration     = 300
	defaultDuration = 30

	minMaxMessages     = 1
	maxMaxMessages     = 1000
	defaultMaxMessages = 100
)

// registerMessageTools registers the publish and subscribe tools.
func (s *Server) registerMessageTools() {
	publishTool := mcp.NewTool("publish_mqtt_message",
		mcp.WithDescription("Publish an MQTT message to your EMQX cluster on EMQX Cloud or a self-managed deployment"),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("MQTT topic to publish to"),
		),
		mcp.WithString("payload",
			mcp.Required(),
			mcp.Description("Message content"),
		),
		mcp.WithNumber("qos",
			mcp.DefaultNumber(0),
			mcp.Description("Quality of Service level: 0, 1, or 2"),
		),
		mcp.WithBoolean("retain",
			mcp.DefaultBool(false),
			mcp.Description("Whether the broker retains the message"),
		),
	)
	s.mcp.AddTool(publishTool, s.handlePublish)

	subscribeTool := mcp.NewTool("subscribe_mqtt_topic",
		mcp.WithDescription("Collect live messages published on an MQTT topic for a bounded time window"),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic filter to observe (wildcards allowed)"),
		),
		mcp.WithNumber("duration",
			mcp.DefaultNumber(defaultDuration),
			mcp.Description("Collection window in seconds (1-300)"),
		),
		mcp.WithNumber("max_messages",
			mcp.DefaultNumber(defaultMaxMessages),
			mcp.Description("Stop collecting after this many messages (1-1000)"),
		),
	)
	s.mcp.AddTool(subscribeTool, s.handleSubscribe)
}

func (s *Server) handlePublish(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil || topic == "" {
		return mcp.NewToolResultError("Missing required parameter: topic"), nil
	}
	payload, err := request.RequireString("payload")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: payload"), nil
	}
	qos := request.GetInt("qos", 0)
	if qos < 0 || qos > 2 {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid QoS value: %d. Must be 0, 1, or 2", qos)), nil
	}
	retain := request.GetBool("retain", false)

	s.log.Info("handling publish request", "topic", topic)
	return s.renderResult(s.client.Publish(topic, payload, qos, retain))
}

func (s *Server) handleSubscribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil || topic == "" {
		return mcp.NewToolResultError("Missing required parameter: topic"), nil
	}
	duration := request.GetInt("duration", defaultDuration)
	if duration < minDuration || duration > maxDuration {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Invalid duration: %d. Must be between %d and %d seconds", duration, minDuration, maxDuration)), nil
	}
	maxMessages := request.GetInt("max_messages", defaultMaxMessages)
	if maxMessages < minMaxMessages || maxMessages > maxMaxMessages {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Invalid max_messages: %d. Must be between %d and %d", maxMessages, minMaxMessages, maxMaxMessages)), nil
	}

	s.log.Info("handling subscribe request", "topic", topic, "duration", duration, "max_messages", maxMessages)
	return s.renderResult(s.client.Subscribe(topic, time.Duration(duration)*time.Second, maxMessages))
}
