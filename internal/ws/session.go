package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session is the server side of one connected client. It owns a read loop
// feeding frames to the router and a write loop draining a bounded outbound
// queue, so a slow receiver never stalls anyone else's reads.
type Session struct {
	id   string
	addr string
	conn *clientConn
	hub  *Hub

	out chan []byte

	mu   sync.Mutex
	room string
}

func newSession(conn *clientConn, addr string, hub *Hub, queueSize int) *Session {
	return &Session{
		id:   uuid.NewString(),
		addr: addr,
		conn: conn,
		hub:  hub,
		out:  make(chan []byte, queueSize),
	}
}

func (s *Session) ID() string { return s.id }

// CurrentRoom returns the room this session last joined, or "".
func (s *Session) CurrentRoom() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

func (s *Session) setRoom(name string) {
	s.mu.Lock()
	s.room = name
	s.mu.Unlock()
}

// enqueue offers one outbound payload without blocking. A false return means
// the queue is full; the payload is dropped for this member only and is
// never redelivered.
func (s *Session) enqueue(payload []byte) bool {
	select {
	case s.out <- payload:
		return true
	default:
		return false
	}
}

// Serve runs the session until the transport closes, then detaches it from
// its room. It returns only after both the read and write duties have
// stopped; no goroutine outlives the call.
func (s *Session) Serve(ctx context.Context, router *Router) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(ctx)
	}()

	s.readLoop(router)

	// The read side is done: leave the room before tearing the write side
	// down, so the registry never holds a handle to a dead session.
	if cur := s.CurrentRoom(); cur != "" {
		s.hub.Leave(cur, s)
	}
	cancel()
	s.conn.close()
	wg.Wait()
}

func (s *Session) readLoop(router *Router) {
	s.conn.setupRead()
	for {
		raw, err := s.conn.readText()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway) {
				zap.L().Debug("ws.read", zap.String("session", s.id), zap.Error(err))
			}
			return
		}
		router.Dispatch(s, raw)
	}
}

func (s *Session) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload := <-s.out:
			if err := s.conn.write(websocket.TextMessage, payload); err != nil {
				zap.L().Debug("ws.write", zap.String("session", s.id), zap.Error(err))
				// Unblocks the read loop as well.
				s.conn.close()
				return
			}
		case <-ticker.C:
			if err := s.conn.write(websocket.PingMessage, nil); err != nil {
				s.conn.close()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
