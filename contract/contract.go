//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"studio-chat/domain"
	"studio-chat/protocol"
)

// EventSink is one client's outbound half. Consume must never block beyond
// its context; a full or broken sink is the sink's own problem, never the
// router's.
type EventSink interface {
	Consume(ctx context.Context, e protocol.Event) error
	// Close releases the sink. Idempotent; after Close, Consume drops events.
	Close()
}

// IRegistry tracks at most one live channel per user id.
type IRegistry interface {
	// Connect admits a channel, evicting any previous one for the same user.
	// The returned id identifies this channel for Release.
	Connect(user domain.User, sink EventSink) uuid.UUID
	// Release removes the entry only if it still belongs to connID, so a
	// stale teardown cannot evict a successor channel.
	Release(userID int64, connID uuid.UUID)
	// Disconnect unconditionally removes the user's entry. Idempotent.
	Disconnect(userID int64)
	// Send attempts best-effort delivery. A failed write removes the entry
	// and reports false; it never queues or retries.
	Send(ctx context.Context, userID int64, e protocol.Event) bool
	ListOnline() []domain.PresenceEntry
	IsOnline(userID int64) bool
}

type WorkerName string

// Worker doesn't protect itself. Supervision (restart on panic) is the
// supervisor's concern.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// avoiding a manual naming method on the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
