// Package emqx provides a client for the EMQX broker's HTTP management API.
//
// The client covers the management operations an MCP tool layer needs:
// publishing messages, listing and inspecting connected MQTT clients,
// disconnecting clients, and collecting live messages from a topic over
// a Server-Sent-Events stream.
//
// # Usage
//
// Create a client with API credentials:
//
//	client := emqx.NewClient(emqx.Config{
//	    APIURL:    "https://broker.example.com/api/v5",
//	    APIKey:    "key",
//	    APISecret: "secret",
//	})
//	defer client.Close()
//
//	result := client.Publish("sensors/temp", "23.5", 1, false)
//	if result.IsError() {
//	    // handle result.Err()
//	}
//
// # Results
//
// Every operation returns a Result rather than an error. A Result is a
// plain key/value mapping decoded from the broker's JSON response; failed
// operations carry a single "error" key with a human-readable diagnostic.
// This uniform shape lets callers render broker responses and failures
// the same way, which is what the MCP tool layer does.
//
// # Connection lifecycle
//
// The client lazily creates one shared HTTP connection pool on first use
// and reuses it across calls. Close releases it; a closed client is safe
// to use again and will transparently create a fresh pool.
package emqx
