package chat

import (
	"errors"
	"sync"
)

// fakeChannel records pushed frames and close calls.
type fakeChannel struct {
	mu       sync.Mutex
	frames   []*Frame
	closed   int
	failSend bool
}

func (f *fakeChannel) Send(fr *Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errors.New("send failed")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeChannel) sent() []*Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Frame, len(f.frames))
	copy(out, f.frames)
	return out
}

func (f *fakeChannel) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
