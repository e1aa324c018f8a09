package domain

import "errors"

// ErrInvalidCommand is the single error kind of the interpreter. Its message is
// the text sent back to clients.
var ErrInvalidCommand = errors.New("Invalid command")

// ErrInvalidChannel is returned when a token is not a well-formed channel name.
var ErrInvalidChannel = errors.New("invalid channel")

// ErrInvalidUser is returned when a token is not a well-formed user identifier.
var ErrInvalidUser = errors.New("invalid user")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSessionID is returned for session IDs a store cannot address.
var ErrInvalidSessionID = errors.New("invalid session id")
