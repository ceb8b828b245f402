package handlers

import (
	"PairChat/service/chat"
	"PairChat/tools/decode"
)

// TypingHandler relays typing-state changes. Frames from connections that
// never completed init are dropped.
type TypingHandler struct{}

func NewTypingHandler() chat.Handler { return &TypingHandler{} }

func (h *TypingHandler) Type() string { return chat.FrameTyping }

func (h *TypingHandler) Handle(ctx *chat.Context, f *chat.Frame, c *chat.Conn) error {
	if c.State() != chat.StateActive {
		return nil
	}
	p, err := decode.Struct[chat.TypingPayload](f.Payload)
	if err != nil {
		return err
	}
	ctx.S.Relayer().RelayTyping(c.UserID(), p.ConversationID, p.IsTyping)
	return nil
}
