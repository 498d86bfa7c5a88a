package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The game client connects from its own origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebsocketListener struct {
	port    uint16
	cm      *ConnectionManager
	metrics http.Handler
}

type WebsocketListenerOpt func(*WebsocketListener)

// WithMetricsHandler mounts a handler on /metrics next to the game socket.
func WithMetricsHandler(h http.Handler) WebsocketListenerOpt {
	return func(l *WebsocketListener) {
		l.metrics = h
	}
}

func NewWebsocketListener(port uint16, cm *ConnectionManager, opts ...WebsocketListenerOpt) *WebsocketListener {
	l := &WebsocketListener{
		port: port,
		cm:   cm,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	r := chi.NewRouter()
	r.Get("/ws", l.serveWS)
	if l.metrics != nil {
		r.Handle("/metrics", l.metrics)
	}

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: r,
	}

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := svr.Shutdown(shutdownCtx); err != nil {
				slog.Warn("shutting down websocket listener", "error", err)
			}
		case <-done:
		}
	}()

	err := svr.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}

	return nil
}

func (l *WebsocketListener) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "upgrading connection", "error", err)
		return
	}

	t := newWSTransport(conn)
	s := l.cm.Accept(t)

	defer func() {
		t.expire()
		l.cm.Close(s)
		if err := conn.Close(); err != nil {
			slog.WarnContext(r.Context(), "closing connection",
				"connection", s.ID,
				"error", err)
		}
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.WarnContext(r.Context(), "reading frame",
					"connection", s.ID,
					"error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		l.cm.HandleFrame(r.Context(), s, data)
	}
}

// wsTransport adapts a websocket connection to the session transport. The
// fan-out goroutine and the websocket control handler both write, so sends
// are serialized with a mutex.
type wsTransport struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed atomic.Bool
}

func newWSTransport(conn *websocket.Conn) *wsTransport {
	return &wsTransport{conn: conn}
}

func (t *wsTransport) Send(data []byte) error {
	if t.closed.Load() {
		return fmt.Errorf("connection is closed")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	err := t.conn.WriteMessage(websocket.TextMessage, data)
	if err != nil {
		t.closed.Store(true)
	}
	return err
}

func (t *wsTransport) Expired() bool {
	return t.closed.Load()
}

func (t *wsTransport) expire() {
	t.closed.Store(true)
}
