package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second // must be < pongWait
	maxFrameSize = 4096
)

type clientConn struct {
	rawConn *websocket.Conn
	mu      sync.Mutex
}

func newClientConn(raw *websocket.Conn) *clientConn {
	raw.SetReadLimit(maxFrameSize)
	return &clientConn{rawConn: raw}
}

func (c *clientConn) setupRead() {
	_ = c.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	c.rawConn.SetPongHandler(func(string) error {
		return c.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

// readText blocks until the next text frame; non-text frames are skipped.
func (c *clientConn) readText() (string, error) {
	for {
		mt, data, err := c.rawConn.ReadMessage()
		if err != nil {
			return "", err
		}
		if mt == websocket.TextMessage {
			return string(data), nil
		}
	}
}

func (c *clientConn) write(mt int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteMessage(mt, data)
}

func (c *clientConn) close() {
	_ = c.rawConn.Close()
}
