package storage

import "context"

// PresenceManager mirrors who currently holds a live realtime channel.
// It is an enhancement layer: failures are logged by callers and swallowed,
// and the connection registry never depends on it.
type PresenceManager interface {
	Online(ctx context.Context, userID int64) error
	Offline(ctx context.Context, userID int64) error
	IsOnline(ctx context.Context, userID int64) (bool, error)
}

// NoopPresence is used when no redis is configured.
type NoopPresence struct{}

func (NoopPresence) Online(context.Context, int64) error           { return nil }
func (NoopPresence) Offline(context.Context, int64) error          { return nil }
func (NoopPresence) IsOnline(context.Context, int64) (bool, error) { return false, nil }
