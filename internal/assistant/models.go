// internal/assistant/models.go
package assistant

import "encoding/json"

// ChatRequest is the body sent to the assistant retrieval endpoint.
type ChatRequest struct {
	UserInput string `json:"user_input"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// ChatResponse is the body returned by the assistant retrieval endpoint.
// Result records stay raw here; the normalizer owns their interpretation and
// defaults each record independently.
type ChatResponse struct {
	Response  string            `json:"response"`
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id"`
	Result    []json.RawMessage `json:"result,omitempty"`
}
