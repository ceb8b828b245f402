package chat

import (
	"encoding/json"
	"fmt"
)

const (
	FramePing   = "ping"
	FrameInit   = "init"
	FrameTyping = "typing"
)

// Frame is one JSON event on the realtime channel: a flat object with a
// "type" discriminator plus type-specific fields.
type Frame struct {
	Type    string
	Payload map[string]any
}

// ParseFrame decodes raw JSON into a frame. Anything without a string
// "type" is malformed; callers discard malformed frames without closing
// the channel.
func ParseFrame(raw []byte) (*Frame, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal frame: %w", err)
	}
	t, _ := m["type"].(string)
	if t == "" {
		return nil, fmt.Errorf("frame missing type")
	}
	delete(m, "type")
	return &Frame{Type: t, Payload: m}, nil
}

func (f *Frame) Encode() ([]byte, error) {
	m := make(map[string]any, len(f.Payload)+1)
	for k, v := range f.Payload {
		m[k] = v
	}
	m["type"] = f.Type
	return json.Marshal(m)
}

// InitPayload announces the channel owner's identity.
type InitPayload struct {
	UserID int64 `json:"userId"`
}

// TypingPayload is a typing-state change scoped to one conversation.
// Inbound frames omit UserID; outbound frames carry the sender's id.
type TypingPayload struct {
	ConversationID int64 `json:"conversationId"`
	IsTyping       bool  `json:"isTyping"`
}

func BuildPing() *Frame {
	return &Frame{Type: FramePing, Payload: map[string]any{}}
}

func BuildTyping(fromUserID, conversationID int64, isTyping bool) *Frame {
	return &Frame{Type: FrameTyping, Payload: map[string]any{
		"userId":         fromUserID,
		"conversationId": conversationID,
		"isTyping":       isTyping,
	}}
}
