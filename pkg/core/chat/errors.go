package chat

import "errors"

// ErrSessionNotFound is returned when a message targets an unknown or
// already-reaped session.
var ErrSessionNotFound = errors.New("chat session not found")
