package model

import "time"

// Conversation is strictly two-party; UserAID < UserBID is normalized at
// creation time so the pair is a unique key.
type Conversation struct {
	ConversationID int64     `bson:"conversation_id" json:"conversationId"`
	UserAID        int64     `bson:"user_a_id" json:"userAId"`
	UserBID        int64     `bson:"user_b_id" json:"userBId"`
	CreateTime     time.Time `bson:"create_time" json:"createTime"`
}

func (Conversation) Collection() string { return "conversations" }

// HasParticipant reports whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// PeerOf returns the other participant for userID (0 when not a member).
func (c *Conversation) PeerOf(userID int64) int64 {
	switch userID {
	case c.UserAID:
		return c.UserBID
	case c.UserBID:
		return c.UserAID
	}
	return 0
}
