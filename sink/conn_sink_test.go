package sink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"studio-chat/errors"
	"studio-chat/protocol"
)

func Test_Consume_Buffers_Until_Drained(t *testing.T) {
	req := require.New(t)
	s := NewConnSink(2)

	req.NoError(s.Consume(context.Background(), protocol.ErrorEvent("one")))
	req.NoError(s.Consume(context.Background(), protocol.ErrorEvent("two")))

	first := <-s.Events()
	req.Equal(protocol.EventError, first.Type)
}

func Test_Consume_Full_Buffer_Reports_Backlog(t *testing.T) {
	req := require.New(t)
	s := NewConnSink(1)

	req.NoError(s.Consume(context.Background(), protocol.ErrorEvent("one")))

	// When the buffer is full, Consume fails instead of blocking
	err := s.Consume(context.Background(), protocol.ErrorEvent("two"))
	req.ErrorIs(err, errors.ErrSinkBacklog)
}

func Test_Close_Is_Idempotent_And_Flushes(t *testing.T) {
	req := require.New(t)
	s := NewConnSink(2)

	req.NoError(s.Consume(context.Background(), protocol.ErrorEvent("pending")))

	s.Close()
	s.Close()

	// Then the buffered event still reaches the drain before the close is
	// observed
	event, ok := <-s.Events()
	req.True(ok)
	req.Equal(protocol.EventError, event.Type)

	_, ok = <-s.Events()
	req.False(ok)

	// And further consumes are dropped with an error
	req.ErrorIs(s.Consume(context.Background(), protocol.ErrorEvent("late")), errors.ErrSinkClosed)
}
