package handlers

import (
	"PairChat/service/chat"
	"PairChat/tools/decode"
)

// InitHandler promotes a connection once its owner announces identity.
type InitHandler struct{}

func NewInitHandler() chat.Handler { return &InitHandler{} }

func (h *InitHandler) Type() string { return chat.FrameInit }

func (h *InitHandler) Handle(ctx *chat.Context, f *chat.Frame, c *chat.Conn) error {
	p, err := decode.Struct[chat.InitPayload](f.Payload)
	if err != nil {
		return err
	}
	ctx.S.Mgr().Promote(c, p.UserID)
	return nil
}
