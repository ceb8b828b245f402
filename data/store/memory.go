package store

import (
	"context"
	"sort"
	"sync"

	chatmodel "PairChat/module/chat/model"
	usermodel "PairChat/module/user/model"
)

type pair struct{ a, b int64 }

// Memory is the default backend: plain maps behind one RWMutex. Values are
// copied on the way in and out so callers never share memory with the store.
type Memory struct {
	mu sync.RWMutex

	users      map[int64]usermodel.User
	byUsername map[string]int64

	convs  map[int64]chatmodel.Conversation
	byPair map[pair]int64

	msgs       map[int64]chatmodel.Message
	byConvMsgs map[int64][]int64 // conversation id -> message ids, insertion order
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]usermodel.User),
		byUsername: make(map[string]int64),
		convs:      make(map[int64]chatmodel.Conversation),
		byPair:     make(map[pair]int64),
		msgs:       make(map[int64]chatmodel.Message),
		byConvMsgs: make(map[int64][]int64),
	}
}

var _ Store = (*Memory)(nil)

// ---- users ----

func (s *Memory) CreateUser(_ context.Context, u *usermodel.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUsername[u.Username]; ok {
		return ErrDuplicate
	}
	s.users[u.UserID] = *u
	s.byUsername[u.Username] = u.UserID
	return nil
}

func (s *Memory) GetUserByID(_ context.Context, userID int64) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *Memory) GetUserByUsername(_ context.Context, username string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Memory) ListUsers(_ context.Context) ([]usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]usermodel.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *Memory) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[userID] = u
	return nil
}

func (s *Memory) UpdatePicture(_ context.Context, userID int64, pictureURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PictureURL = pictureURL
	s.users[userID] = u
	return nil
}

// ---- conversations ----

func (s *Memory) CreateConversation(_ context.Context, c *chatmodel.Conversation) error {
	a, b := PairKey(c.UserAID, c.UserBID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byPair[pair{a, b}]; ok {
		return ErrDuplicate
	}
	c.UserAID, c.UserBID = a, b
	s.convs[c.ConversationID] = *c
	s.byPair[pair{a, b}] = c.ConversationID
	return nil
}

func (s *Memory) GetConversation(_ context.Context, conversationID int64) (*chatmodel.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.convs[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *Memory) GetConversations(_ context.Context, userID int64) ([]chatmodel.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []chatmodel.Conversation
	for _, c := range s.convs {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConversationID < out[j].ConversationID })
	return out, nil
}

func (s *Memory) FindConversationByUsers(_ context.Context, userAID, userBID int64) (*chatmodel.Conversation, error) {
	a, b := PairKey(userAID, userBID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPair[pair{a, b}]
	if !ok {
		return nil, ErrNotFound
	}
	c := s.convs[id]
	return &c, nil
}

// ---- messages ----

func (s *Memory) CreateMessage(_ context.Context, m *chatmodel.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[m.ConversationID]; !ok {
		return ErrNotFound
	}
	s.msgs[m.MessageID] = *m
	s.byConvMsgs[m.ConversationID] = append(s.byConvMsgs[m.ConversationID], m.MessageID)
	return nil
}

func (s *Memory) GetMessages(_ context.Context, conversationID int64) ([]chatmodel.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byConvMsgs[conversationID]
	out := make([]chatmodel.Message, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.msgs[id])
	}
	return out, nil
}

func (s *Memory) LastMessage(_ context.Context, conversationID int64) (*chatmodel.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byConvMsgs[conversationID]
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	m := s.msgs[ids[len(ids)-1]]
	return &m, nil
}

func (s *Memory) CountUnread(_ context.Context, conversationID, readerID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, id := range s.byConvMsgs[conversationID] {
		m := s.msgs[id]
		if !m.IsRead && m.SenderID != readerID {
			n++
		}
	}
	return n, nil
}

func (s *Memory) MarkConversationMessagesAsRead(_ context.Context, conversationID, readerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range s.byConvMsgs[conversationID] {
		m := s.msgs[id]
		if !m.IsRead && m.SenderID != readerID {
			m.IsRead = true
			s.msgs[id] = m
			n++
		}
	}
	return n, nil
}
