package ratelimit

import (
	"strings"
	"time"
)

// Class groups endpoints that share a request budget.
type Class string

const (
	// ClassSessionCreate covers starting a new session.
	ClassSessionCreate Class = "session_create"
	// ClassModelCall covers commands that reach the scenario model.
	ClassModelCall Class = "model_call"
)

// Limit is a per-client request budget within a sliding window. A limit with
// no requests is unlimited.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Result describes one check against a client's window.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int
}

// ExceededResponse is the body of a 429 reply.
type ExceededResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	RetryAfter       int    `json:"retry_after"`
}

func bucketKey(ip string, class Class) string {
	return "ip:" + sanitizeKeySegment(ip) + ":" + string(class)
}

// sanitizeKeySegment escapes the key delimiter so that distinct client
// identifiers never map to the same bucket. '_' is escaped first.
func sanitizeKeySegment(s string) string {
	s = strings.ReplaceAll(s, "_", "__")
	return strings.ReplaceAll(s, ":", "_c")
}
