package service

import (
	"context"
	"strings"
	"time"

	"PairChat/data/store"
	chatmodel "PairChat/module/chat/model"
	usermodel "PairChat/module/user/model"
	"PairChat/service/storage"
	"PairChat/tools/errs"
	"PairChat/tools/ids"

	"github.com/pkg/errors"
)

const maxContentLen = 4000

// MessageService owns the durable message path: conversation creation,
// message create/fetch, read marks. It never pushes; clients poll.
type MessageService struct {
	store    store.Store
	presence storage.PresenceManager
}

func NewMessageService(st store.Store, presence storage.PresenceManager) *MessageService {
	if presence == nil {
		presence = storage.NoopPresence{}
	}
	return &MessageService{store: st, presence: presence}
}

// ConversationSummary is the conversation-list item: the peer, the latest
// message, the caller's unread count and whether the peer currently holds
// a live realtime channel.
type ConversationSummary struct {
	Conversation chatmodel.Conversation `json:"conversation"`
	Peer         usermodel.Public       `json:"peer"`
	PeerOnline   bool                   `json:"peerOnline"`
	LastMessage  *chatmodel.Message     `json:"lastMessage,omitempty"`
	UnreadCount  int64                  `json:"unreadCount"`
}

// CreateConversation starts (or returns) the conversation between the
// caller and otherUserID. The pair is unique, so a replayed create is not
// an error.
func (s *MessageService) CreateConversation(ctx context.Context, userID, otherUserID int64) (*chatmodel.Conversation, error) {
	if otherUserID == 0 || otherUserID == userID {
		return nil, errs.ErrArgs.WithDetail("invalid peer user id")
	}
	if _, err := s.store.GetUserByID(ctx, otherUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.ErrRecordNotFound.WithDetail("peer user")
		}
		return nil, err
	}
	if existing, err := s.store.FindConversationByUsers(ctx, userID, otherUserID); err == nil {
		return existing, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	c := &chatmodel.Conversation{
		ConversationID: ids.Generate(),
		UserAID:        userID,
		UserBID:        otherUserID,
		CreateTime:     time.Now(),
	}
	if err := s.store.CreateConversation(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// lost a create race; the winner's record is the answer
			return s.store.FindConversationByUsers(ctx, userID, otherUserID)
		}
		return nil, err
	}
	return c, nil
}

// ListConversations returns the caller's conversations as summaries.
func (s *MessageService) ListConversations(ctx context.Context, userID int64) ([]ConversationSummary, error) {
	convs, err := s.store.GetConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ConversationSummary, 0, len(convs))
	for i := range convs {
		c := convs[i]
		sum := ConversationSummary{Conversation: c}
		peerID := c.PeerOf(userID)
		if peer, err := s.store.GetUserByID(ctx, peerID); err == nil {
			sum.Peer = peer.Public()
		}
		// best effort: a presence outage degrades to "offline"
		if online, err := s.presence.IsOnline(ctx, peerID); err == nil {
			sum.PeerOnline = online
		}
		if last, err := s.store.LastMessage(ctx, c.ConversationID); err == nil {
			sum.LastMessage = last
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		n, err := s.store.CountUnread(ctx, c.ConversationID, userID)
		if err != nil {
			return nil, err
		}
		sum.UnreadCount = n
		out = append(out, sum)
	}
	return out, nil
}

func (s *MessageService) participantConversation(ctx context.Context, userID, conversationID int64) (*chatmodel.Conversation, error) {
	c, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.ErrRecordNotFound.WithDetail("conversation")
		}
		return nil, err
	}
	if !c.HasParticipant(userID) {
		return nil, errs.ErrNoPermission.WithDetail("not a participant")
	}
	return c, nil
}

// GetMessages returns the full message history of a conversation the caller
// participates in. Clients poll this; delivery is not pushed.
func (s *MessageService) GetMessages(ctx context.Context, userID, conversationID int64) ([]chatmodel.Message, error) {
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.store.GetMessages(ctx, conversationID)
}

// CreateMessage appends a message, optionally as a reply to an earlier
// message of the same conversation.
func (s *MessageService) CreateMessage(ctx context.Context, userID, conversationID int64, content string, replyToID int64) (*chatmodel.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.ErrArgs.WithDetail("content empty")
	}
	if len(content) > maxContentLen {
		return nil, errs.ErrArgs.WithDetail("content too long")
	}
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if replyToID != 0 {
		msgs, err := s.store.GetMessages(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		found := false
		for i := range msgs {
			if msgs[i].MessageID == replyToID {
				found = true
				break
			}
		}
		if !found {
			return nil, errs.ErrArgs.WithDetail("replyToId not in conversation")
		}
	}
	m := &chatmodel.Message{
		MessageID:      ids.Generate(),
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
		ReplyToID:      replyToID,
		CreateTime:     time.Now(),
	}
	if err := s.store.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MarkRead marks every message from the peer as read and returns how many
// flipped.
func (s *MessageService) MarkRead(ctx context.Context, userID, conversationID int64) (int64, error) {
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return 0, err
	}
	return s.store.MarkConversationMessagesAsRead(ctx, conversationID, userID)
}
