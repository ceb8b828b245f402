package model

import "time"

type Message struct {
	MessageID      int64     `bson:"message_id" json:"messageId"`
	ConversationID int64     `bson:"conversation_id" json:"conversationId"`
	SenderID       int64     `bson:"sender_id" json:"senderId"`
	Content        string    `bson:"content" json:"content"`
	ReplyToID      int64     `bson:"reply_to_id,omitempty" json:"replyToId,omitempty"`
	IsRead         bool      `bson:"is_read" json:"isRead"`
	CreateTime     time.Time `bson:"create_time" json:"createTime"`
}

func (Message) Collection() string { return "messages" }
