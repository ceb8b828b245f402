package chat

import "testing"

func TestOnOpenSendsPingProbe(t *testing.T) {
	mgr := NewManager(NewRegistry())
	ch := &fakeChannel{}
	conn := mgr.OnOpen(ch)

	if conn.State() != StateAwaitingInit {
		t.Fatalf("state = %s, want awaiting-init", conn.State())
	}
	got := ch.sent()
	if len(got) != 1 || got[0].Type != FramePing {
		t.Fatalf("want exactly one ping probe, got %v", got)
	}
}

func TestCloseBeforeInitLeavesRegistryUntouched(t *testing.T) {
	reg := NewRegistry()
	mgr := NewManager(reg)
	ch := &fakeChannel{}
	conn := mgr.OnOpen(ch)

	mgr.OnClose(conn)

	if conn.State() != StateClosed {
		t.Fatalf("state = %s, want closed", conn.State())
	}
	if reg.Len() != 0 {
		t.Fatal("a connection that never reached active must not touch the registry")
	}
	if ch.closeCount() == 0 {
		t.Fatal("transport must be closed")
	}
}

func TestPromoteRegisters(t *testing.T) {
	reg := NewRegistry()
	mgr := NewManager(reg)
	var activated []int64
	mgr.OnActive = func(userID int64) { activated = append(activated, userID) }

	ch := &fakeChannel{}
	conn := mgr.OnOpen(ch)
	mgr.Promote(conn, 7)

	if conn.State() != StateActive || conn.UserID() != 7 {
		t.Fatalf("conn = {%s %d}, want {active 7}", conn.State(), conn.UserID())
	}
	e, ok := reg.Find(7)
	if !ok || e.Channel != Channel(ch) {
		t.Fatal("registry entry missing or bound to the wrong channel")
	}
	if len(activated) != 1 || activated[0] != 7 {
		t.Fatalf("OnActive hook calls = %v, want [7]", activated)
	}
}

func TestPromoteIgnoredOutsideAwaitingInit(t *testing.T) {
	reg := NewRegistry()
	mgr := NewManager(reg)
	conn := mgr.OnOpen(&fakeChannel{})
	mgr.Promote(conn, 7)

	// second init on the same connection: already active, ignored
	mgr.Promote(conn, 8)
	if conn.UserID() != 7 {
		t.Fatalf("userID = %d, want 7", conn.UserID())
	}
	if _, ok := reg.Find(8); ok {
		t.Fatal("second init must not create another entry")
	}

	// zero user id never promotes
	c2 := mgr.OnOpen(&fakeChannel{})
	mgr.Promote(c2, 0)
	if c2.State() != StateAwaitingInit {
		t.Fatal("init with userId=0 must be ignored")
	}
}

func TestReconnectEvictsOldChannel(t *testing.T) {
	reg := NewRegistry()
	mgr := NewManager(reg)
	var closed []int64
	mgr.OnClosed = func(userID int64) { closed = append(closed, userID) }

	ch1 := &fakeChannel{}
	conn1 := mgr.OnOpen(ch1)
	mgr.Promote(conn1, 7)

	ch2 := &fakeChannel{}
	conn2 := mgr.OnOpen(ch2)
	mgr.Promote(conn2, 7)

	if ch1.closeCount() != 1 {
		t.Fatalf("old channel closed %d times, want exactly 1", ch1.closeCount())
	}
	e, ok := reg.Find(7)
	if !ok || e.Channel != Channel(ch2) {
		t.Fatal("registry must point at the reconnect channel")
	}

	// the evicted connection's read loop eventually reports close; that
	// stale teardown must not remove the successor's entry
	mgr.OnClose(conn1)
	if _, ok := reg.Find(7); !ok {
		t.Fatal("stale close removed the successor's entry")
	}
	if len(closed) != 0 {
		t.Fatalf("OnClosed fired for a stale close: %v", closed)
	}

	mgr.OnClose(conn2)
	if _, ok := reg.Find(7); ok {
		t.Fatal("entry should be gone after the live connection closed")
	}
	if len(closed) != 1 || closed[0] != 7 {
		t.Fatalf("OnClosed calls = %v, want [7]", closed)
	}
}

func TestOnCloseIdempotent(t *testing.T) {
	mgr := NewManager(NewRegistry())
	conn := mgr.OnOpen(&fakeChannel{})
	mgr.Promote(conn, 7)
	mgr.OnClose(conn)
	mgr.OnClose(conn) // second close is a no-op
	if conn.State() != StateClosed {
		t.Fatalf("state = %s, want closed", conn.State())
	}
}
