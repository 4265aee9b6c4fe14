// internal/models/message.go
package models

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// PartTypeText is the only content segment variant used by this core. The
// parts list stays typed so richer variants can be added without breaking
// transcript consumers.
const PartTypeText = "text"

// MessagePart is one typed content segment of a message.
type MessagePart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// MessageMetadata carries per-turn presentation hints.
type MessageMetadata struct {
	CreatedAt     time.Time `json:"createdAt"`
	ShowMapButton bool      `json:"showMapButton,omitempty"`
}

// Message is one conversation turn. Transcript entries are append-only:
// messages are never mutated or reordered after creation.
type Message struct {
	ID       string           `json:"id"`
	Role     Role             `json:"role"`
	Parts    []MessagePart    `json:"parts"`
	Metadata *MessageMetadata `json:"metadata,omitempty"`
}

// NewTextMessage builds a message holding a single text part.
func NewTextMessage(id string, role Role, text string, meta *MessageMetadata) Message {
	return Message{
		ID:       id,
		Role:     role,
		Parts:    []MessagePart{{Type: PartTypeText, Text: text}},
		Metadata: meta,
	}
}

// Text returns the concatenated text parts of the message.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if p.Type == PartTypeText {
			out += p.Text
		}
	}
	return out
}
