package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 25 * time.Second
	sendBuffer   = 32
)

var errChannelClosed = errors.New("channel closed")

// wsChannel adapts one gorilla connection to the Channel contract. Writes
// go through a per-connection queue drained by a single pump goroutine, so
// the relay never blocks on a slow socket and gorilla's one-writer rule
// holds. A full queue drops the frame: everything on this channel is lossy.
type wsChannel struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newWSChannel(ws *websocket.Conn) *wsChannel {
	c := &wsChannel{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	go c.writePump()
	return c
}

func (c *wsChannel) Send(f *Frame) error {
	b, err := f.Encode()
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return errChannelClosed
	default:
	}
	select {
	case c.send <- b:
		return nil
	case <-c.done:
		return errChannelClosed
	default:
		return errors.New("send queue full")
	}
}

// Close is idempotent and safe from any goroutine; the registry calls it
// while holding its lock during eviction.
func (c *wsChannel) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *wsChannel) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = c.ws.Close()
	}()
	for {
		select {
		case <-c.done:
			return
		case b := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
