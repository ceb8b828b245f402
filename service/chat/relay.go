package chat

import "PairChat/logger"

// Relay routes ephemeral typing signals between the participants of a
// conversation. Stateless: every decision comes from the registry.
type Relay struct {
	reg *Registry
}

func NewRelay(reg *Registry) *Relay {
	return &Relay{reg: reg}
}

// RelayTyping handles one typing event from fromUserID. It records the
// sender's active conversation, then pushes a typing frame to every other
// connected user watching the same conversation. Delivery is fire and
// forget: no ack, no retry, at most once per connected recipient; anyone
// without a live channel is silently skipped.
//
// Conversations are strictly two-party, so the "anyone watching this
// conversation" scan finds the other participant without a storage round
// trip on this latency-sensitive path.
//
// Returns the number of recipients the frame was handed to.
func (r *Relay) RelayTyping(fromUserID, conversationID int64, isTyping bool) int {
	if conversationID <= 0 {
		// 0 marks "no active conversation" in the registry; relaying it
		// would match every idle entry
		return 0
	}
	if !r.reg.SetActiveConversation(fromUserID, conversationID) {
		// sender never completed init; nothing to route
		return 0
	}
	frame := BuildTyping(fromUserID, conversationID, isTyping)
	n := 0
	for _, ch := range r.reg.Watchers(conversationID, fromUserID) {
		if err := ch.Send(frame); err != nil {
			// recipient is closing; typing indicators are lossy
			logger.Debugf("[relay] drop typing user=%d conv=%d: %v", fromUserID, conversationID, err)
			continue
		}
		n++
	}
	return n
}
