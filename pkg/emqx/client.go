package emqx

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/emqx-contrib/emqx-mcp-server/pkg/logging"
)

// DefaultTimeout is the per-request timeout for management API calls.
// Streaming subscriptions are bounded by their collection window instead.
const DefaultTimeout = 30 * time.Second

// Endpoint paths on the management API, relative to the configured base URL.
const (
	publishPath   = "/publish"
	clientsPath   = "/clients"
	subscribePath = "/subscribe"
)

// Config holds the credentials for the EMQX management API. All three
// fields must be non-empty before any network call; validation happens
// at startup in the config layer, not here.
type Config struct {
	// APIURL is the base URL of the management API,
	// e.g. "https://broker.example.com/api/v5".
	APIURL string

	// APIKey and APISecret authenticate requests via HTTP Basic auth.
	APIKey    string
	APISecret string
}

// Client talks to one EMQX broker's HTTP management API.
//
// Operations may be invoked concurrently. All request-style operations
// share one lazily-created HTTP connection pool; concurrent first calls
// may race to create it, which is harmless (last writer wins, the pool
// itself carries no request state).
type Client struct {
	cfg     Config
	timeout time.Duration
	log     *slog.Logger

	// httpc is the shared handle. nil means not yet created or closed;
	// the next call creates a fresh one.
	httpc *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for the management API at cfg.APIURL.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		timeout: DefaultTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authHeader returns the Basic auth header value for the configured
// key/secret pair.
func (c *Client) authHeader() string {
	token := base64.StdEncoding.EncodeToString([]byte(c.cfg.APIKey + ":" + c.cfg.APISecret))
	return "Basic " + token
}

// ensureClient returns the shared HTTP client, creating a fresh one if
// none exists or the previous one was released by Close.
func (c *Client) ensureClient() *http.Client {
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: c.timeout}
	}
	return c.httpc
}

// Close releases the shared HTTP connection pool. It is safe to call
// before any request was made and safe to call repeatedly. The client
// remains usable; the next call creates a new pool.
func (c *Client) Close() {
	if c.httpc != nil {
		c.httpc.CloseIdleConnections()
		c.httpc = nil
	}
}

// Publish publishes a message to an MQTT topic through the broker.
// qos must be 0, 1 or 2; the tool layer validates this before calling.
func (c *Client) Publish(topic, payload string, qos int, retain bool) Result {
	c.log.Info("publishing message", "topic", topic, "qos", qos, "retain", retain)
	body := map[string]any{
		"topic":   topic,
		"payload": payload,
		"qos":     qos,
		"retain":  retain,
	}
	return c.do(http.MethodPost, publishPath, body, nil)
}

// ListClients returns a page of connected MQTT clients. params are passed
// through as query parameters verbatim; page defaults to 1 and limit to 10
// when not supplied.
func (c *Client) ListClients(params map[string]string) Result {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("limit", "10")
	for k, v := range params {
		query.Set(k, v)
	}
	return c.do(http.MethodGet, clientsPath, nil, query)
}

// GetClientInfo returns detailed information about one connected client.
func (c *Client) GetClientInfo(clientID string) Result {
	return c.do(http.MethodGet, clientsPath+"/"+url.PathEscape(clientID), nil, nil)
}

// KickClient disconnects a client from the broker. On success the broker
// returns no content, so the client synthesizes a confirmation payload.
func (c *Client) KickClient(clientID string) Result {
	c.log.Info("disconnecting client", "clientid", clientID)
	result := c.do(http.MethodDelete, clientsPath+"/"+url.PathEscape(clientID), nil, nil)
	if result.IsError() {
		return result
	}
	return Result{
		"success": true,
		"message": fmt.Sprintf("Client %s has been disconnected", clientID),
	}
}

// do performs one request/response cycle against the management API.
// Every exit path yields a Result; transport failures never escape as
// errors or panics.
func (c *Client) do(method, path string, body any, query url.Values) Result {
	fullURL := c.cfg.APIURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errorResult("HTTP request failed: %v", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, fullURL, bodyReader)
	if err != nil {
		return errorResult("HTTP request failed: %v", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.ensureClient().Do(req)
	if err != nil {
		return c.transportError(method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.handleResponse(resp)
}

// transportError maps a failed round trip onto the error taxonomy:
// timeout, connection failure, or generic transport failure.
func (c *Client) transportError(method, path string, err error) Result {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		c.log.Error("request timed out", "method", method, "path", path)
		return errorResult("Request timed out: %s %s", method, path)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		c.log.Error("connection failed", "method", method, "path", path, "error", err)
		return errorResult("Connection error: %v", err)
	}
	c.log.Error("request failed", "method", method, "path", path, "error", err)
	return errorResult("HTTP request failed: %v", err)
}

// handleResponse decodes a broker response into a Result. A 2xx response
// with a missing or malformed JSON body degrades to an empty success
// result rather than an error.
func (c *Client) handleResponse(resp *http.Response) Result {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.StatusCode == http.StatusNoContent {
			return Result{}
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return Result{}
		}
		var result Result
		if err := json.Unmarshal(raw, &result); err != nil || result == nil {
			return Result{}
		}
		return result
	}

	raw, _ := io.ReadAll(resp.Body)
	msg := fmt.Sprintf("EMQX API error: %d - %s", resp.StatusCode, raw)
	c.log.Error("management API returned an error", "status", resp.StatusCode, "body", string(raw))
	return Result{"error": msg}
}
