package errors

import "fmt"

var (
	// Business errors, surfaced to the acting user as a typed error event.
	ErrNotRoomMember  = fmt.Errorf("not a room member")
	ErrNotRoomAdmin   = fmt.Errorf("not a room admin")
	ErrRoomNotFound   = fmt.Errorf("room not found")
	ErrAlreadyMember  = fmt.Errorf("already a room member")
	ErrSelfDirectRoom = fmt.Errorf("direct room requires two distinct users")
	ErrEmptyContent   = fmt.Errorf("message content is empty")
	ErrSearchScope    = fmt.Errorf("search requires a room or a peer scope")

	// Protocol errors, non-fatal for the connection.
	ErrUnknownEnvelopeType = fmt.Errorf("unknown envelope type")
	ErrInvalidEnvelope     = fmt.Errorf("invalid envelope")

	// Auth errors, fatal for the admission attempt.
	ErrInvalidToken = fmt.Errorf("invalid or expired token")

	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrEmptyWords      = fmt.Errorf("no words have been found")
	ErrWorkerPanic     = fmt.Errorf("worker panic")

	// Sink errors, fatal for the session that owns the sink.
	ErrSinkClosed  = fmt.Errorf("sink is closed")
	ErrSinkBacklog = fmt.Errorf("sink buffer is full")
)
