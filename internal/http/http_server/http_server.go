package http_server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chatrelaygo/internal/http/roomhandler"
	"chatrelaygo/internal/metrics"
	"chatrelaygo/internal/ws"
)

type httpServer struct {
	listenPort uint16
	srv        http.Server
	lnMu       sync.Mutex
	ln         net.Listener
	hub        *ws.Hub
	wsSrv      *ws.WsServer
}

func NewHttpServer(listenPort uint16, wsSrv *ws.WsServer, hub *ws.Hub) *httpServer {
	return &httpServer{
		listenPort: listenPort,
		wsSrv:      wsSrv,
		hub:        hub,
	}
}

// Addr reports the bound listen address; empty until Start has bound it.
func (h *httpServer) Addr() string {
	h.lnMu.Lock()
	defer h.lnMu.Unlock()
	if h.ln == nil {
		return ""
	}
	return h.ln.Addr().String()
}

func (h *httpServer) Start() error {
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	h.lnMu.Lock()
	h.ln = ln
	h.lnMu.Unlock()

	routerEngine := gin.New()
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	// websocket endpoint
	routerEngine.GET("/ws", h.wsSrv.Handle)

	routerEngine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "chat relay is running")
	})
	routerEngine.GET("/metrics", gin.WrapH(metrics.Handler()))

	// REST introspection of live rooms
	rh := roomhandler.New(h.hub)
	rh.Register(routerEngine)

	h.srv = http.Server{
		Handler: routerEngine,
	}

	zap.L().Info("http.listen", zap.String("addr", listenAddr))
	return h.srv.Serve(ln)
}

// Dispose gracefully shuts the HTTP server down. It waits up to 10 s for
// in-flight requests to finish; the fresh context matters because Dispose
// runs exactly when the process's signal context is already canceled.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err // e.g. active conns didn't finish in time
	}

	if ctx.Err() == context.DeadlineExceeded {
		zap.L().Error("http_dispose", zap.Error(errors.New("shutdown timed out")))
		log.Println("shutdown timeout (10 s)")
	}

	return nil
}
