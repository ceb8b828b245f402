package store

import (
	"context"
	"errors"

	chatmodel "PairChat/module/chat/model"
	usermodel "PairChat/module/user/model"
)

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate record")
)

// UserStore persists account records. Callers assign ids (tools/ids) so
// backends stay interchangeable.
type UserStore interface {
	CreateUser(ctx context.Context, u *usermodel.User) error
	GetUserByID(ctx context.Context, userID int64) (*usermodel.User, error)
	GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error)
	ListUsers(ctx context.Context) ([]usermodel.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdatePicture(ctx context.Context, userID int64, pictureURL string) error
}

// ChatStore persists conversations and messages. The realtime core never
// touches this; only the request/response path does.
type ChatStore interface {
	CreateConversation(ctx context.Context, c *chatmodel.Conversation) error
	GetConversation(ctx context.Context, conversationID int64) (*chatmodel.Conversation, error)
	GetConversations(ctx context.Context, userID int64) ([]chatmodel.Conversation, error)
	FindConversationByUsers(ctx context.Context, userAID, userBID int64) (*chatmodel.Conversation, error)

	CreateMessage(ctx context.Context, m *chatmodel.Message) error
	GetMessages(ctx context.Context, conversationID int64) ([]chatmodel.Message, error)
	LastMessage(ctx context.Context, conversationID int64) (*chatmodel.Message, error)
	CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error)
	MarkConversationMessagesAsRead(ctx context.Context, conversationID, readerID int64) (int64, error)
}

type Store interface {
	UserStore
	ChatStore
}

// PairKey normalizes a two-party pair so (a,b) and (b,a) hit the same record.
func PairKey(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
