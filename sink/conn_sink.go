// Package sink provides per-connection event buffers between the router and
// the transport write pump.
package sink

import (
	"context"
	"sync"

	"studio-chat/errors"
	"studio-chat/protocol"
)

// ConnSink buffers outbound events for one connection. The write pump drains
// Events; the router fills the buffer through Consume.
//
// Consume never blocks: a full buffer means the client cannot keep up, and
// the returned error lets the registry drop the session instead of letting
// one slow reader stall the router.
type ConnSink struct {
	mu     sync.Mutex
	events chan protocol.Event
	closed bool
}

func NewConnSink(bufferSize int) *ConnSink {
	return &ConnSink{events: make(chan protocol.Event, bufferSize)}
}

// Events is drained by the write pump. The channel is closed by Close, which
// is how the pump learns the session is over.
func (s *ConnSink) Events() <-chan protocol.Event {
	return s.events
}

func (s *ConnSink) Consume(ctx context.Context, e protocol.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrSinkClosed
	}
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrSinkBacklog
	}
}

// Close is idempotent. Buffered events left in the channel still reach the
// write pump before it observes the close.
func (s *ConnSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
