package interview

import "errors"

var (
	// ErrSessionNotFound means the session id is not in the live store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrArchiveNotFound means the id exists neither in the archive index
	// nor in durable storage.
	ErrArchiveNotFound = errors.New("archived session not found")

	// ErrGeneration wraps a text-generation failure. The candidate turn
	// appended before the call is retained; history is never rolled back.
	ErrGeneration = errors.New("generation failed")
)
