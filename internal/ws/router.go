package ws

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"chatrelaygo/internal/metrics"
)

// HandlerFunc consumes the argument portion of one inbound command frame.
type HandlerFunc func(s *Session, arg string) error

// Router keeps a map[command]handler, à-la gin.Engine.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	mtr      *metrics.Relay
}

func NewRouter(mtr *metrics.Relay) *Router {
	return &Router{handlers: make(map[string]HandlerFunc), mtr: mtr}
}

// Register binds a command tag to a handler.
func (r *Router) Register(cmd string, h HandlerFunc) {
	if cmd == "" {
		panic("ws router: empty command")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[cmd] = h
}

var errUnknownCommand = errors.New("unknown_command")

// Dispatch parses one raw text frame and runs its handler. Malformed and
// unknown frames are dropped with a log entry; the session stays connected
// and its state is untouched.
func (r *Router) Dispatch(s *Session, raw string) {
	frame, ok := ParseFrame(raw)
	if !ok {
		r.reject(s, raw, errUnknownCommand)
		return
	}

	r.mu.RLock()
	h, ok := r.handlers[frame.Cmd]
	r.mu.RUnlock()
	if !ok {
		r.reject(s, raw, errUnknownCommand)
		return
	}

	if err := h(s, frame.Arg); err != nil {
		r.reject(s, raw, err)
	}
}

func (r *Router) reject(s *Session, raw string, err error) {
	r.mtr.RejectedFrames.Inc()
	zap.L().Debug("ws.drop_frame",
		zap.String("session", s.id),
		zap.String("frame", raw),
		zap.Error(err))
}
