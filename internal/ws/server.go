package ws

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The relay has no origin policy; see the auth non-goals.
	CheckOrigin: func(*http.Request) bool { return true },
}

type WsServer struct {
	hub       *Hub
	router    *Router
	queueSize int
}

func NewWsServer(h *Hub, queueSize int) *WsServer {
	srv := &WsServer{
		hub:       h,
		router:    NewRouter(h.mtr),
		queueSize: queueSize,
	}
	srv.registerHandlers() // ← all WS commands configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

// Handle upgrades one HTTP request to a websocket session and serves it on
// its own goroutine. An upgrade failure affects only this request.
func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}

	sess := newSession(newClientConn(rawConn), ginCtx.Request.RemoteAddr, s.hub, s.queueSize)
	zap.L().Info("ws.connect",
		zap.String("session", sess.id),
		zap.String("addr", sess.addr))

	go func() {
		s.hub.mtr.ActiveSessions.Inc()
		defer s.hub.mtr.ActiveSessions.Dec()

		// The request context dies with the handler return; the session
		// outlives it.
		sess.Serve(context.Background(), s.router)
		zap.L().Info("ws.disconnect", zap.String("session", sess.id))
	}()
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

var (
	errEmptyRoomName = errors.New("empty_room_name")
	errMalformedMsg  = errors.New("malformed_room_msg")
)

func (s *WsServer) registerHandlers() {
	// CREATE and JOIN distinguish intent for the human; server behavior is
	// identical (create-if-absent, then join).
	s.router.Register(CmdCreateRoom, s.handleJoin)
	s.router.Register(CmdJoinRoom, s.handleJoin)
	s.router.Register(CmdLeaveRoom, s.handleLeave)
	s.router.Register(CmdRoomMsg, s.handleRoomMsg)
}

func (s *WsServer) handleJoin(sess *Session, arg string) error {
	name := strings.TrimSpace(arg)
	if name == "" {
		return errEmptyRoomName
	}
	s.hub.Join(name, sess)
	return nil
}

func (s *WsServer) handleLeave(sess *Session, arg string) error {
	// The stock client emits "LEAVE_ROOM: <room>" with a stray space.
	name := strings.TrimSpace(arg)
	if name == "" {
		return errEmptyRoomName
	}
	s.hub.Leave(name, sess)
	return nil
}

func (s *WsServer) handleRoomMsg(sess *Session, arg string) error {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) != 3 {
		return errMalformedMsg
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return errEmptyRoomName
	}
	s.hub.Broadcast(name, []byte(FormatChat(parts[1], parts[2])))
	return nil
}
