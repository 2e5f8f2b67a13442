package stream

import "errors"

var (
	// ErrAlreadyWatching is returned when Start is called on a watcher that
	// already has a live feed. At most one feed per collection per process.
	ErrAlreadyWatching = errors.New("sceneforge: change feed already watching")

	// ErrNotWatching is returned when Stop is called without a live feed.
	ErrNotWatching = errors.New("sceneforge: no active change feed")

	// ErrNotInitialized is returned when Broadcast is called on a
	// broadcaster that was never constructed. This is a startup-ordering
	// bug in the caller, not a runtime condition to recover from.
	ErrNotInitialized = errors.New("sceneforge: broadcaster not initialized")
)
