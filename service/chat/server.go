package chat

import (
	"PairChat/logger"
	"PairChat/service/storage"
	"PairChat/tools/safe"
	"context"
	"time"
)

// Server owns the realtime subsystem: the registry, the lifecycle manager,
// the typing relay and the frame dispatcher. All constructed here and
// passed by handle; nothing is an ambient singleton.
type Server struct {
	reg      *Registry
	relay    *Relay
	mgr      *Manager
	disp     *Dispatcher
	presence storage.PresenceManager
}

func NewServer(presence storage.PresenceManager) *Server {
	if presence == nil {
		presence = storage.NoopPresence{}
	}
	reg := NewRegistry()
	s := &Server{
		reg:      reg,
		relay:    NewRelay(reg),
		mgr:      NewManager(reg),
		disp:     NewDispatcher(),
		presence: presence,
	}
	// presence mirroring is best-effort and off the hot path
	s.mgr.OnActive = func(userID int64) {
		safe.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.presence.Online(ctx, userID); err != nil {
				logger.Warnf("[presence] online user=%d: %v", userID, err)
			}
		})
	}
	s.mgr.OnClosed = func(userID int64) {
		safe.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.presence.Offline(ctx, userID); err != nil {
				logger.Warnf("[presence] offline user=%d: %v", userID, err)
			}
		})
	}
	return s
}

func (s *Server) Reg() *Registry    { return s.reg }
func (s *Server) Relayer() *Relay   { return s.relay }
func (s *Server) Mgr() *Manager     { return s.mgr }
func (s *Server) Disp() *Dispatcher { return s.disp }

// HandleFrame parses one inbound payload and routes it. Malformed or
// unrecognized input is discarded without touching the connection state:
// this channel carries no critical data, so best effort is acceptable and
// nothing here is fatal to the connection.
func (s *Server) HandleFrame(c *Conn, raw []byte) {
	f, err := ParseFrame(raw)
	if err != nil {
		sample := raw
		if len(sample) > 256 {
			sample = sample[:256]
		}
		logger.Debugf("[ws] discard malformed frame conn=%s err=%v sample=%q", c.ID, err, sample)
		return
	}
	h := s.disp.GetHandler(f.Type)
	if h == nil {
		return
	}
	if err := h.Handle(&Context{S: s}, f, c); err != nil {
		logger.Debugf("[ws] handler type=%s conn=%s: %v", f.Type, c.ID, err)
	}
}
