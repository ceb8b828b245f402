package chat

import (
	"PairChat/logger"
	"PairChat/tools/ids"
)

// State is the per-channel lifecycle state.
type State int32

const (
	StateConnecting   State = iota // transport handshake in progress
	StateAwaitingInit              // transport open, identity not yet announced
	StateActive                    // init received, registry entry exists
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAwaitingInit:
		return "awaiting-init"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Conn is the lifecycle record of one realtime connection. state and
// userID are owned by the connection's reader goroutine: every transition
// happens on that goroutine, so no locking is needed here. Other
// goroutines only ever touch the channel (eviction closes the transport,
// which makes the reader exit and run its own OnClose).
type Conn struct {
	ID      string // diagnostics only
	state   State
	userID  int64
	channel Channel
}

func (c *Conn) State() State     { return c.state }
func (c *Conn) UserID() int64    { return c.userID }
func (c *Conn) Channel() Channel { return c.channel }

// Manager drives connection lifecycle transitions and keeps the registry
// in sync. OnActive/OnClosed hooks (optional) let the transport layer
// mirror presence without the core depending on storage.
type Manager struct {
	reg *Registry

	OnActive func(userID int64)
	OnClosed func(userID int64)
}

func NewManager(reg *Registry) *Manager {
	return &Manager{reg: reg}
}

func (m *Manager) Registry() *Registry { return m.reg }

// OnOpen admits a freshly-opened transport: the connection enters
// awaiting-init and receives one informational ping probe. The probe
// expects no reply; it only signals that the channel is writable.
func (m *Manager) OnOpen(ch Channel) *Conn {
	c := &Conn{
		ID:      ids.GenerateString(),
		state:   StateAwaitingInit,
		channel: ch,
	}
	if err := ch.Send(BuildPing()); err != nil {
		logger.Debugf("[lifecycle] ping probe conn=%s: %v", c.ID, err)
	}
	logger.Debugf("[lifecycle] open conn=%s", c.ID)
	return c
}

// Promote moves the connection to active on a valid init: the registry
// binds the user to this channel, evicting any previous channel for the
// same user (last connection wins). A second init on an already-active
// connection is ignored.
func (m *Manager) Promote(c *Conn, userID int64) {
	if c.state != StateAwaitingInit || userID == 0 {
		return
	}
	c.userID = userID
	c.state = StateActive
	m.reg.Register(userID, c.channel)
	logger.Infof("[lifecycle] active conn=%s user=%d", c.ID, userID)
	if m.OnActive != nil {
		m.OnActive(userID)
	}
}

// OnClose handles transport close from any state. A connection that never
// reached active has no registry entry, so there is nothing to remove. For
// an active connection the channel-compare removal keeps a stale close
// (after eviction) from unregistering the successor.
func (m *Manager) OnClose(c *Conn) {
	if c.state == StateClosed {
		return
	}
	prev := c.state
	c.state = StateClosed
	_ = c.channel.Close()
	if prev != StateActive {
		logger.Debugf("[lifecycle] closed conn=%s state=%s", c.ID, prev)
		return
	}
	removed := m.reg.UnregisterChannel(c.userID, c.channel)
	logger.Infof("[lifecycle] closed conn=%s user=%d removed=%v", c.ID, c.userID, removed)
	if removed && m.OnClosed != nil {
		m.OnClosed(c.userID)
	}
}
