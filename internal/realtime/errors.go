package realtime

import "errors"

var (
	// ErrNotConnected is returned by operations that need a live session.
	ErrNotConnected = errors.New("realtime channel is not connected")

	// ErrProtocol wraps STOMP ERROR frames.
	ErrProtocol = errors.New("STOMP protocol error")
)
