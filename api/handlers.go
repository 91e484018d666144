// Package api is the REST surface: history, unread state, rooms, contacts,
// search and a small debug endpoint. Live messaging happens on the
// WebSocket side; everything here is request/response.
package api

import (
	"encoding/json"
	goerrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studio-chat/contract"
	"studio-chat/errors"
	"studio-chat/observability"
	"studio-chat/services"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type Handler struct {
	service  services.IChatService
	registry contract.IRegistry
	stats    *observability.Stats
	log      *slog.Logger
}

func NewHandler(service services.IChatService, registry contract.IRegistry, stats *observability.Stats, log *slog.Logger) *Handler {
	return &Handler{service: service, registry: registry, stats: stats, log: log}
}

// GET /api/v1/messages/conversation/{peer_id}
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	peerID, err := pathID(r, "peer_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer id")
		return
	}

	skip, limit := pagination(r)
	messages, err := h.service.Conversation(user.ID, peerID, skip, limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// POST /api/v1/messages/conversation/{peer_id}/read
func (h *Handler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	peerID, err := pathID(r, "peer_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer id")
		return
	}

	marked, err := h.service.MarkConversationRead(user.ID, peerID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"marked": marked})
}

// GET /api/v1/messages/unread-count
func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	count, err := h.service.UnreadCount(user.ID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

// GET /api/v1/contacts/recent
func (h *Handler) GetRecentContacts(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	_, limit := pagination(r)
	contacts, err := h.service.RecentContacts(user.ID, limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// GET /api/v1/rooms/{room_id}/messages
func (h *Handler) GetRoomMessages(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	roomID, err := pathID(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	skip, limit := pagination(r)
	messages, err := h.service.RoomHistory(user.ID, roomID, skip, limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// GET /api/v1/rooms/{room_id}/unread-count
func (h *Handler) GetRoomUnreadCount(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	roomID, err := pathID(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	count, err := h.service.RoomUnreadCount(user.ID, roomID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

type markRoomReadRequest struct {
	UpToID int64 `json:"up_to_id"`
}

// POST /api/v1/rooms/{room_id}/read
func (h *Handler) MarkRoomRead(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	roomID, err := pathID(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req markRoomReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UpToID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.service.MarkRoomRead(user.ID, roomID, req.UpToID); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createRoomRequest struct {
	Name      string  `json:"name"`
	IsGroup   bool    `json:"is_group"`
	MemberIDs []int64 `json:"member_ids"`
}

// POST /api/v1/rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "room name is required")
		return
	}

	room, err := h.service.CreateRoom(user.ID, req.Name, req.IsGroup, req.MemberIDs)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

type directRoomRequest struct {
	PeerID int64 `json:"peer_id"`
}

// POST /api/v1/rooms/direct
func (h *Handler) GetOrCreateDirectRoom(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	var req directRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PeerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid peer id")
		return
	}

	room, err := h.service.GetOrCreateDirectRoom(user.ID, req.PeerID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// DELETE /api/v1/rooms/{room_id}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	roomID, err := pathID(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	if err := h.service.DeleteRoom(user.ID, roomID); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/rooms
func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	rooms, err := h.service.RoomsForUser(user.ID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

type addMemberRequest struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
}

// POST /api/v1/rooms/{room_id}/members
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	roomID, err := pathID(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.service.AddMember(user.ID, roomID, req.UserID, req.Nickname)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// DELETE /api/v1/rooms/{room_id}/members/{user_id}
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	roomID, err := pathID(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	memberID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.service.RemoveMember(user.ID, roomID, memberID); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/rooms/{room_id}/members
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	roomID, err := pathID(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	members, err := h.service.Members(user.ID, roomID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// GET /api/v1/search?q=...&room_id=...|peer_id=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	terms := r.URL.Query().Get("q")
	if terms == "" {
		writeError(w, http.StatusBadRequest, "query term is required")
		return
	}

	query := services.SearchQuery{UserID: user.ID, Terms: terms}
	if raw := r.URL.Query().Get("room_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid room id")
			return
		}
		query.RoomID = &id
	}
	if raw := r.URL.Query().Get("peer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid peer id")
			return
		}
		query.PeerID = &id
	}
	_, query.Limit = pagination(r)

	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// GET /api/v1/online-users
func (h *Handler) GetOnlineUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.OnlineUsers())
}

// GET /debug/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Snapshot(len(h.registry.ListOnline())))
}

// fail maps domain errors to status codes. Unknown errors stay opaque.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case goerrors.Is(err, errors.ErrNotRoomMember), goerrors.Is(err, errors.ErrNotRoomAdmin):
		writeError(w, http.StatusForbidden, err.Error())
	case goerrors.Is(err, errors.ErrRoomNotFound), goerrors.Is(err, errors.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case goerrors.Is(err, errors.ErrAlreadyMember),
		goerrors.Is(err, errors.ErrSelfDirectRoom),
		goerrors.Is(err, errors.ErrSearchScope):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func pagination(r *http.Request) (skip, limit int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = min(v, maxPageLimit)
		}
	}
	if raw := r.URL.Query().Get("skip"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			skip = v
		}
	}
	return skip, limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
