package emqx

import "fmt"

// Result is the uniform return value of every client operation. On success
// it holds the broker's decoded JSON response (empty for no-content
// responses). On failure it holds a single "error" key with a diagnostic
// message. Callers distinguish the two solely by key presence.
type Result map[string]any

// IsError reports whether the result carries an error.
func (r Result) IsError() bool {
	_, ok := r["error"]
	return ok
}

// Err returns the error message, or the empty string for success results.
func (r Result) Err() string {
	if msg, ok := r["error"].(string); ok {
		return msg
	}
	return ""
}

// errorResult builds a failed Result from a format string.
func errorResult(format string, args ...any) Result {
	return Result{"error": fmt.Sprintf(format, args...)}
}
