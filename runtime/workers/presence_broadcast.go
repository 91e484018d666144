package workers

import (
	"context"
	"log/slog"

	"studio-chat/contract"
	"studio-chat/domain"
	"studio-chat/protocol"
)

// PresenceBroadcast consumes presence changes emitted by the registry and
// fans a user_status event out to every other online user.
//
// Broadcast is best-effort with no delivery guarantees; a user who misses a
// change resynchronizes from the online_users snapshot on their next connect.
type PresenceBroadcast struct {
	registry contract.IRegistry
	changes  <-chan domain.PresenceChange
	log      *slog.Logger
}

func NewPresenceBroadcast(registry contract.IRegistry, changes <-chan domain.PresenceChange, log *slog.Logger) *PresenceBroadcast {
	return &PresenceBroadcast{registry: registry, changes: changes, log: log}
}

func (w *PresenceBroadcast) Run(ctx context.Context) error {
	for {
		select {
		case change := <-w.changes:
			w.broadcast(ctx, change)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping presence broadcast")
			return nil
		}
	}
}

// broadcast skips the subject themselves. A just-disconnected user has no
// channel anyway; a just-connected one learns the full picture from their
// online_users snapshot.
func (w *PresenceBroadcast) broadcast(ctx context.Context, change domain.PresenceChange) {
	event := protocol.UserStatusEvent(change)
	for _, entry := range w.registry.ListOnline() {
		if entry.UserID == change.UserID {
			continue
		}
		w.registry.Send(ctx, entry.UserID, event)
	}
	w.log.Debug("presence change broadcast", "user_id", change.UserID, "status", change.Status)
}
