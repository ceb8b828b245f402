package chat

import (
	"net"
	"net/http"
	"time"

	"PairChat/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	readLimit = 4096
	pongWait  = 75 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and runs the connection's read loop. One
// reader goroutine per connection; all lifecycle transitions for this
// connection happen here, in arrival order.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[ws] upgrade error: %v", err)
		return
	}

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	ch := newWSChannel(ws)
	conn := s.mgr.OnOpen(ch)

	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Debugf("[ws] peer closed conn=%s err=%v", conn.ID, rerr)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Debugf("[ws] read timeout conn=%s err=%v", conn.ID, rerr)
			} else {
				logger.Debugf("[ws] read err conn=%s err=%v", conn.ID, rerr)
			}
			break
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		s.HandleFrame(conn, data)
	}

	s.mgr.OnClose(conn)
}
