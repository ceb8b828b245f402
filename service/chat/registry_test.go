package chat

import "testing"

func TestRegisterLastConnectionWins(t *testing.T) {
	reg := NewRegistry()
	c1 := &fakeChannel{}
	c2 := &fakeChannel{}

	reg.Register(7, c1)
	reg.Register(7, c2)

	if n := reg.Len(); n != 1 {
		t.Fatalf("want exactly one entry, got %d", n)
	}
	e, ok := reg.Find(7)
	if !ok {
		t.Fatal("entry for user 7 missing")
	}
	if e.Channel != Channel(c2) {
		t.Fatal("entry not bound to the newest channel")
	}
	if c1.closeCount() != 1 {
		t.Fatalf("evicted channel closed %d times, want 1", c1.closeCount())
	}
	if c2.closeCount() != 0 {
		t.Fatal("new channel must stay open")
	}
}

func TestUnregister(t *testing.T) {
	reg := NewRegistry()

	// unknown user: no-op, no panic
	reg.Unregister(42)

	reg.Register(7, &fakeChannel{})
	reg.Unregister(7)
	if _, ok := reg.Find(7); ok {
		t.Fatal("entry should be gone after unregister")
	}
	reg.Unregister(7)
}

func TestUnregisterChannelIgnoresStaleClose(t *testing.T) {
	reg := NewRegistry()
	c1 := &fakeChannel{}
	c2 := &fakeChannel{}
	reg.Register(7, c1)
	reg.Register(7, c2) // evicts c1

	if reg.UnregisterChannel(7, c1) {
		t.Fatal("stale channel must not remove the successor's entry")
	}
	e, ok := reg.Find(7)
	if !ok || e.Channel != Channel(c2) {
		t.Fatal("successor entry lost")
	}
	if !reg.UnregisterChannel(7, c2) {
		t.Fatal("current channel should unregister")
	}
	if _, ok := reg.Find(7); ok {
		t.Fatal("entry should be gone")
	}
}

func TestSetActiveConversation(t *testing.T) {
	reg := NewRegistry()
	if reg.SetActiveConversation(7, 5) {
		t.Fatal("set on unknown user must report false")
	}
	reg.Register(7, &fakeChannel{})
	if !reg.SetActiveConversation(7, 5) {
		t.Fatal("set on registered user must report true")
	}
	e, _ := reg.Find(7)
	if e.ActiveConversationID != 5 {
		t.Fatalf("active conversation = %d, want 5", e.ActiveConversationID)
	}
}

func TestWatchers(t *testing.T) {
	reg := NewRegistry()
	ca, cb, cc := &fakeChannel{}, &fakeChannel{}, &fakeChannel{}
	reg.Register(1, ca)
	reg.Register(2, cb)
	reg.Register(3, cc)
	reg.SetActiveConversation(1, 5)
	reg.SetActiveConversation(2, 5)
	reg.SetActiveConversation(3, 9)

	got := reg.Watchers(5, 1)
	if len(got) != 1 || got[0] != Channel(cb) {
		t.Fatalf("watchers(5, except 1) = %v, want only user 2's channel", got)
	}
	if got := reg.Watchers(5, 0); len(got) != 2 {
		t.Fatalf("watchers(5) = %d channels, want 2", len(got))
	}
	if got := reg.Watchers(100, 0); len(got) != 0 {
		t.Fatal("no one watches conversation 100")
	}
}
