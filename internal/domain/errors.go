package domain

import "errors"

var (
	// ErrDataFetch indicates that a read from the store failed. Reads are
	// all-or-nothing: callers must not mistake a failed load for empty data.
	ErrDataFetch = errors.New("data fetch failed")
	// ErrWrite indicates that a create or delete failed. Not retryable.
	ErrWrite = errors.New("write failed")
	// ErrConflict indicates that a progress upsert race stayed unresolved
	// after the single fallback update. Retryable by the caller.
	ErrConflict = errors.New("progress write conflict unresolved")
	// ErrValidation indicates that input was rejected before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrSignature indicates that an inbound identity event failed
	// verification. The event is logged and dropped.
	ErrSignature = errors.New("signature verification failed")

	// ErrDuplicateKey is the adapter-level signal that a store rejected an
	// upsert with a uniqueness violation on (habit_id, date). It triggers
	// the one fallback update and never escapes the service layer.
	ErrDuplicateKey = errors.New("duplicate key")
)
