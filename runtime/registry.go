package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"studio-chat/contract"
	"studio-chat/domain"
	"studio-chat/protocol"
)

type session struct {
	connID      uuid.UUID
	user        domain.User
	sink        contract.EventSink
	connectedAt time.Time
}

// Registry tracks at most one live session per user id. Presence is derived
// from the session map; there is no persisted presence state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]session

	presence chan<- domain.PresenceChange
	log      *slog.Logger
}

// NewRegistry wires the registry to the presence channel consumed by the
// broadcast worker. Emission is non-blocking; a saturated channel drops the
// change rather than stalling connect or disconnect paths.
func NewRegistry(presence chan<- domain.PresenceChange, log *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[int64]session),
		presence: presence,
		log:      log,
	}
}

// Connect admits a session, evicting any previous one for the same user.
// Eviction closes the old sink but emits no presence change, because the user
// never stopped being online.
func (r *Registry) Connect(user domain.User, sink contract.EventSink) uuid.UUID {
	connID := uuid.New()

	r.mu.Lock()
	prev, evicted := r.sessions[user.ID]
	r.sessions[user.ID] = session{
		connID:      connID,
		user:        user,
		sink:        sink,
		connectedAt: time.Now().UTC(),
	}
	r.mu.Unlock()

	if evicted {
		prev.sink.Close()
		r.log.Info("evicted previous session", "user_id", user.ID, "old_conn_id", prev.connID)
	} else {
		r.emit(domain.PresenceChange{UserID: user.ID, Status: domain.StatusOnline, At: time.Now().UTC()})
	}

	r.log.Info("session connected", "user_id", user.ID, "username", user.Username, "conn_id", connID)
	return connID
}

// Release removes the user's session only if it still belongs to connID.
// A teardown racing against an eviction is a no-op here: the successor
// session already owns the entry.
func (r *Registry) Release(userID int64, connID uuid.UUID) {
	r.mu.Lock()
	current, ok := r.sessions[userID]
	if !ok || current.connID != connID {
		r.mu.Unlock()
		return
	}
	delete(r.sessions, userID)
	r.mu.Unlock()

	current.sink.Close()
	r.emit(domain.PresenceChange{UserID: userID, Status: domain.StatusOffline, At: time.Now().UTC()})
	r.log.Info("session released", "user_id", userID, "conn_id", connID)
}

// Disconnect unconditionally removes the user's session. Idempotent.
func (r *Registry) Disconnect(userID int64) {
	r.mu.Lock()
	current, ok := r.sessions[userID]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.sessions, userID)
	r.mu.Unlock()

	current.sink.Close()
	r.emit(domain.PresenceChange{UserID: userID, Status: domain.StatusOffline, At: time.Now().UTC()})
	r.log.Info("session disconnected", "user_id", userID)
}

// Send attempts best-effort delivery to one user. A failed write means the
// session is broken, so the entry is removed on the spot. Send never queues
// and never retries.
func (r *Registry) Send(ctx context.Context, userID int64, e protocol.Event) bool {
	r.mu.RLock()
	current, ok := r.sessions[userID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	if err := current.sink.Consume(ctx, e); err != nil {
		r.log.Warn("delivery failed, dropping session", "user_id", userID, "event", e.Type, "error", err)
		r.Release(userID, current.connID)
		return false
	}
	return true
}

func (r *Registry) ListOnline() []domain.PresenceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.MapToSlice(r.sessions, func(_ int64, s session) domain.PresenceEntry {
		return domain.PresenceEntry{
			UserID:      s.user.ID,
			Username:    s.user.Username,
			Nickname:    s.user.Nickname,
			ConnectedAt: s.connectedAt,
		}
	})
}

func (r *Registry) IsOnline(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[userID]
	return ok
}

func (r *Registry) OnlineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) emit(change domain.PresenceChange) {
	if r.presence == nil {
		return
	}
	select {
	case r.presence <- change:
	default:
		r.log.Warn("presence channel full, dropping change", "user_id", change.UserID, "status", change.Status)
	}
}
