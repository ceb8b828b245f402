package chat

import "sync"

// Entry is one live realtime channel for one user. ActiveConversationID is
// advisory routing state written by the relay; it is never validated
// against durable conversation membership.
type Entry struct {
	UserID               int64
	Channel              Channel
	ActiveConversationID int64 // 0 = none
}

// Registry maps user id -> live channel. At most one entry per user: a new
// registration retires the previous channel before it becomes visible, so
// the last connection always wins.
type Registry struct {
	mu     sync.RWMutex
	byUser map[int64]*Entry
}

func NewRegistry() *Registry {
	return &Registry{byUser: make(map[int64]*Entry)}
}

// Register inserts the channel for userID, evicting any prior entry. The
// old channel is closed while the lock is held: the close must complete
// before the new entry is visible, otherwise two channels could briefly
// coexist for one user and the stale one could receive pushes.
func (r *Registry) Register(userID int64, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byUser[userID]; ok {
		_ = old.Channel.Close()
		delete(r.byUser, userID)
	}
	r.byUser[userID] = &Entry{UserID: userID, Channel: ch}
}

// Unregister removes the entry if present; no-op otherwise.
func (r *Registry) Unregister(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
}

// UnregisterChannel removes the entry only when it still points at ch.
// Teardown of an evicted connection arrives after its successor registered;
// the compare keeps that stale close from removing the successor's entry.
func (r *Registry) UnregisterChannel(userID int64, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byUser[userID]
	if !ok || e.Channel != ch {
		return false
	}
	delete(r.byUser, userID)
	return true
}

// Find returns a snapshot of the user's entry. Absent means no live
// channel: deliver nothing, not an error.
func (r *Registry) Find(userID int64) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byUser[userID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// SetActiveConversation records the conversation the user last signaled
// typing in. Returns false when the user has no live channel.
func (r *Registry) SetActiveConversation(userID, conversationID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byUser[userID]
	if !ok {
		return false
	}
	e.ActiveConversationID = conversationID
	return true
}

// ForEach calls fn with a snapshot of every entry. O(n) in connected-user
// count; fine at this scale.
func (r *Registry) ForEach(fn func(Entry)) {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.byUser))
	for _, e := range r.byUser {
		entries = append(entries, *e)
	}
	r.mu.RUnlock()
	for _, e := range entries {
		fn(e)
	}
}

// Watchers returns the channels of every user other than except whose
// active conversation is conversationID.
func (r *Registry) Watchers(conversationID, except int64) []Channel {
	var out []Channel
	r.ForEach(func(e Entry) {
		if e.UserID != except && e.ActiveConversationID == conversationID {
			out = append(out, e.Channel)
		}
	})
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
