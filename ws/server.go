// Package ws is the WebSocket transport. It admits authenticated clients
// into the registry, pumps outbound events from their sink, and feeds decoded
// inbound commands to the router.
package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"studio-chat/auth"
	"studio-chat/contract"
	"studio-chat/domain"
	"studio-chat/protocol"
	"studio-chat/runtime"
	"studio-chat/sink"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type Server struct {
	verifier   *auth.Verifier
	registry   contract.IRegistry
	router     *runtime.Router
	upgrader   websocket.Upgrader
	bufferSize int
	log        *slog.Logger
}

func NewServer(verifier *auth.Verifier, registry contract.IRegistry, router *runtime.Router, allowedOrigins []string, bufferSize int, log *slog.Logger) *Server {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Server{
		verifier: verifier,
		registry: registry,
		router:   router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// No Origin header means a non-browser client; those carry
				// their proof in the token.
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin] || allowed["*"]
			},
		},
		bufferSize: bufferSize,
		log:        log,
	}
}

// Handle serves GET /ws/{token}. A bad token still gets an upgraded
// connection so the close frame with its policy violation code reaches the
// client, matching what browsers can actually observe.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	user, err := s.verifier.Verify(mux.Vars(r)["token"])
	if err != nil {
		s.log.Warn("websocket auth rejected", "remote", r.RemoteAddr, "error", err)
		deadline := time.Now().Add(writeWait)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid token"), deadline)
		_ = conn.Close()
		return
	}

	connSink := sink.NewConnSink(s.bufferSize)
	connID := s.registry.Connect(user, connSink)

	go s.writePump(conn, connSink)

	// The snapshot goes through the sink like any other event, so the client
	// never sees it out of order with live presence updates.
	s.registry.Send(r.Context(), user.ID, protocol.OnlineUsersEvent(s.registry.ListOnline()))

	s.readLoop(r, user, conn)

	// Release is connection-scoped: if a newer session evicted this one, the
	// successor's entry stays untouched.
	s.registry.Release(user.ID, connID)
}

func (s *Server) readLoop(r *http.Request, user domain.User, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("websocket read failed", "user_id", user.ID, "error", err)
			}
			return
		}

		cmd, err := protocol.Decode(raw)
		if err != nil {
			// Protocol errors go back on the sender's own channel and never
			// close the connection.
			s.registry.Send(r.Context(), user.ID, protocol.ErrorEvent(err.Error()))
			continue
		}

		if err := s.router.Submit(r.Context(), user, cmd); err != nil {
			s.log.Info("command rejected", "user_id", user.ID, "error", err)
		}
	}
}

// writePump owns all writes on the connection. It drains the sink until
// Close, interleaving pings to detect dead peers.
func (s *Server) writePump(conn *websocket.Conn, connSink *sink.ConnSink) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case event, ok := <-connSink.Events():
			if !ok {
				deadline := time.Now().Add(writeWait)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
