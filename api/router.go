package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"studio-chat/auth"
	"studio-chat/ws"
)

// NewRouter assembles the full HTTP surface: the authenticated REST API, the
// WebSocket endpoint and the debug stats. The WebSocket route skips the
// Bearer middleware because its token travels in the path.
func NewRouter(handler *Handler, wsServer *ws.Server, verifier *auth.Verifier, allowedOrigins []string) http.Handler {
	root := mux.NewRouter()

	root.HandleFunc("/ws/{token}", wsServer.Handle).Methods(http.MethodGet)
	root.HandleFunc("/debug/stats", handler.GetStats).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(Authenticated(verifier))

	api.HandleFunc("/messages/conversation/{peer_id}", handler.GetConversation).Methods(http.MethodGet)
	api.HandleFunc("/messages/conversation/{peer_id}/read", handler.MarkConversationRead).Methods(http.MethodPost)
	api.HandleFunc("/messages/unread-count", handler.GetUnreadCount).Methods(http.MethodGet)
	api.HandleFunc("/contacts/recent", handler.GetRecentContacts).Methods(http.MethodGet)

	api.HandleFunc("/rooms", handler.CreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms", handler.GetRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/direct", handler.GetOrCreateDirectRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}", handler.DeleteRoom).Methods(http.MethodDelete)
	api.HandleFunc("/rooms/{room_id}/messages", handler.GetRoomMessages).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/unread-count", handler.GetRoomUnreadCount).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/read", handler.MarkRoomRead).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/members", handler.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/members", handler.GetMembers).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/members/{user_id}", handler.RemoveMember).Methods(http.MethodDelete)

	api.HandleFunc("/search", handler.Search).Methods(http.MethodGet)
	api.HandleFunc("/online-users", handler.GetOnlineUsers).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(root)
}
