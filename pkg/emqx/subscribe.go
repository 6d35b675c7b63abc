package emqx

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subscribe collects live messages published on topic by following the
// broker's Server-Sent-Events stream. Collection stops when maxMessages
// messages have arrived, when window has elapsed, or when the broker
// closes the stream, whichever happens first.
//
// Both caps are cooperative: they are checked after each received line,
// so a stalled stream that never delivers a newline holds the call until
// the broker ends the connection. The stream deliberately has no client
// timeout, since one would cut long collection windows short.
//
// On success the result holds {topic, message_count, messages}. Each
// message is the decoded JSON object from one "data:" line, or
// {"raw": <text>} when the payload is not a JSON object. Lines carrying
// other SSE fields (event:, id:, retry:, comments) are ignored.
func (c *Client) Subscribe(topic string, window time.Duration, maxMessages int) Result {
	log := c.log.With("session_id", uuid.NewString(), "topic", topic)

	endpoint := c.cfg.APIURL + subscribePath + "?" + url.Values{"topic": {topic}}.Encode()
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return errorResult("SSE HTTP error: %v", err)
	}
	// The stream carries no JSON body, so unlike the request-style
	// operations there is no content type here.
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	stream := &http.Client{}
	resp, err := stream.Do(req)
	if err != nil {
		return streamError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("subscribe stream rejected", "status", resp.StatusCode, "body", string(body))
		return errorResult("SSE subscribe error: %d - %s", resp.StatusCode, body)
	}

	log.Info("collecting messages", "window", window, "max_messages", maxMessages)

	start := time.Now()
	messages := make([]any, 0, maxMessages)
	capped := false

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data:") {
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload != "" {
				messages = append(messages, parseMessage(payload))
				if len(messages) >= maxMessages {
					capped = true
					break
				}
			}
		}
		if time.Since(start) >= window {
			capped = true
			break
		}
	}
	if err := scanner.Err(); err != nil && !capped {
		log.Error("subscribe stream failed", "error", err)
		return streamError(err)
	}

	log.Info("collection finished", "message_count", len(messages), "elapsed", time.Since(start))
	return Result{
		"topic":         topic,
		"message_count": len(messages),
		"messages":      messages,
	}
}

// parseMessage decodes one SSE data payload. Payloads that are not JSON
// objects are preserved verbatim under a "raw" key instead of being
// dropped or escalated to an error.
func parseMessage(payload string) any {
	var msg map[string]any
	if err := json.Unmarshal([]byte(payload), &msg); err != nil || msg == nil {
		return map[string]any{"raw": payload}
	}
	return msg
}

// streamError maps stream open/read failures onto the error taxonomy.
func streamError(err error) Result {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errorResult("SSE connection error: %v", err)
	}
	return errorResult("SSE HTTP error: %v", err)
}
