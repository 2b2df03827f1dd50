package models

import "encoding/json"

// Identity carries the caller identity attached to a resolver event.
// Cognito-style events put the subject in Claims["sub"]; other callers
// may supply a flat Sub.
type Identity struct {
	Sub    string         `json:"sub,omitempty"`
	Claims map[string]any `json:"claims,omitempty"`
}

// Subject returns the stable caller identifier, preferring the nested
// claims subject over the flat one. Empty string means no identity.
func (i *Identity) Subject() string {
	if i == nil {
		return ""
	}
	if sub, ok := i.Claims["sub"].(string); ok && sub != "" {
		return sub
	}
	return i.Sub
}

// ResolverEvent is the invocation payload for the resolve endpoint.
type ResolverEvent struct {
	OperationName string          `json:"operationName"`
	Arguments     json.RawMessage `json:"arguments,omitempty"`
	Identity      *Identity       `json:"identity,omitempty"`
}

// Envelope is the status/body response shape used for mutation failures
// and for the diagnostic connectivity check.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}
