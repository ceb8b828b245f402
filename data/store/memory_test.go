package store

import (
	"context"
	"errors"
	"testing"
	"time"

	chatmodel "PairChat/module/chat/model"
	usermodel "PairChat/module/user/model"
)

func seedUser(t *testing.T, s *Memory, id int64, name string) {
	t.Helper()
	err := s.CreateUser(context.Background(), &usermodel.User{
		UserID: id, Username: name, PasswordHash: "x", CreateTime: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
}

func seedConversation(t *testing.T, s *Memory, id, a, b int64) {
	t.Helper()
	err := s.CreateConversation(context.Background(), &chatmodel.Conversation{
		ConversationID: id, UserAID: a, UserBID: b, CreateTime: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed conversation %d: %v", id, err)
	}
}

func TestMemoryUserUniqueness(t *testing.T) {
	s := NewMemory()
	seedUser(t, s, 1, "alice")

	err := s.CreateUser(context.Background(), &usermodel.User{UserID: 2, Username: "alice"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate username err = %v, want ErrDuplicate", err)
	}

	u, err := s.GetUserByUsername(context.Background(), "alice")
	if err != nil || u.UserID != 1 {
		t.Fatalf("lookup alice = %v, %v", u, err)
	}
	if _, err := s.GetUserByID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user err = %v, want ErrNotFound", err)
	}
}

func TestMemoryUpdateUser(t *testing.T) {
	s := NewMemory()
	seedUser(t, s, 1, "alice")

	if err := s.UpdatePassword(context.Background(), 1, "newhash"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if err := s.UpdatePicture(context.Background(), 1, "http://pic"); err != nil {
		t.Fatalf("update picture: %v", err)
	}
	u, _ := s.GetUserByID(context.Background(), 1)
	if u.PasswordHash != "newhash" || u.PictureURL != "http://pic" {
		t.Fatalf("user after updates = %+v", u)
	}
	if err := s.UpdatePassword(context.Background(), 99, "h"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing user err = %v", err)
	}
}

func TestMemoryConversationPairUnique(t *testing.T) {
	s := NewMemory()
	seedConversation(t, s, 10, 2, 1) // stored normalized as (1,2)

	err := s.CreateConversation(context.Background(), &chatmodel.Conversation{
		ConversationID: 11, UserAID: 1, UserBID: 2,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate pair err = %v, want ErrDuplicate", err)
	}

	c, err := s.FindConversationByUsers(context.Background(), 1, 2)
	if err != nil || c.ConversationID != 10 {
		t.Fatalf("find by users = %v, %v", c, err)
	}
	// order must not matter
	c, err = s.FindConversationByUsers(context.Background(), 2, 1)
	if err != nil || c.ConversationID != 10 {
		t.Fatalf("find by reversed users = %v, %v", c, err)
	}
}

func TestMemoryGetConversationsByParticipant(t *testing.T) {
	s := NewMemory()
	seedConversation(t, s, 10, 1, 2)
	seedConversation(t, s, 11, 1, 3)
	seedConversation(t, s, 12, 2, 3)

	convs, err := s.GetConversations(context.Background(), 1)
	if err != nil || len(convs) != 2 {
		t.Fatalf("user 1 conversations = %v, %v", convs, err)
	}
	convs, _ = s.GetConversations(context.Background(), 4)
	if len(convs) != 0 {
		t.Fatal("user 4 has no conversations")
	}
}

func TestMemoryMessagesOrderAndRead(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	seedConversation(t, s, 10, 1, 2)

	for i, sender := range []int64{1, 2, 2} {
		err := s.CreateMessage(ctx, &chatmodel.Message{
			MessageID: int64(100 + i), ConversationID: 10, SenderID: sender,
			Content: "m", CreateTime: time.Now(),
		})
		if err != nil {
			t.Fatalf("create message %d: %v", i, err)
		}
	}

	msgs, err := s.GetMessages(ctx, 10)
	if err != nil || len(msgs) != 3 {
		t.Fatalf("messages = %d, %v", len(msgs), err)
	}
	if msgs[0].MessageID != 100 || msgs[2].MessageID != 102 {
		t.Fatal("messages out of insertion order")
	}

	last, err := s.LastMessage(ctx, 10)
	if err != nil || last.MessageID != 102 {
		t.Fatalf("last message = %v, %v", last, err)
	}

	// user 1 has two unread from user 2
	n, _ := s.CountUnread(ctx, 10, 1)
	if n != 2 {
		t.Fatalf("unread for user 1 = %d, want 2", n)
	}
	marked, err := s.MarkConversationMessagesAsRead(ctx, 10, 1)
	if err != nil || marked != 2 {
		t.Fatalf("marked = %d, %v", marked, err)
	}
	// own message stays untouched, repeat mark flips nothing
	if n, _ := s.CountUnread(ctx, 10, 1); n != 0 {
		t.Fatalf("unread after mark = %d", n)
	}
	if marked, _ := s.MarkConversationMessagesAsRead(ctx, 10, 1); marked != 0 {
		t.Fatalf("re-mark flipped %d", marked)
	}
	// user 2 still has user 1's message unread
	if n, _ := s.CountUnread(ctx, 10, 2); n != 1 {
		t.Fatalf("unread for user 2 = %d, want 1", n)
	}
}

func TestMemoryCreateMessageUnknownConversation(t *testing.T) {
	s := NewMemory()
	err := s.CreateMessage(context.Background(), &chatmodel.Message{
		MessageID: 1, ConversationID: 999, SenderID: 1, Content: "m",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
