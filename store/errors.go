package store

import "errors"

var (
	// ErrMissingConfig is returned when a required store setting is absent.
	ErrMissingConfig = errors.New("sceneforge: store configuration missing")

	// ErrConnect is returned when the MongoDB client cannot be established.
	ErrConnect = errors.New("sceneforge: could not connect to store")

	// ErrNotFound is returned when a document looked up by id doesn't exist.
	ErrNotFound = errors.New("sceneforge: document not found")

	// ErrWrite wraps the underlying store failure on insert/update/delete,
	// including duplicate-key conflicts rejected by the store itself.
	ErrWrite = errors.New("sceneforge: store write failed")

	// ErrWatch is returned when a change feed cannot be opened.
	ErrWatch = errors.New("sceneforge: could not open change feed")
)
