// Package store provides a MongoDB data access layer with typed collection
// handles and change feeds.
//
// Sceneforge persists heterogeneous document kinds (projects, users) through
// one generic code path. A [Collection] handle binds a collection name to its
// Go document type at compile time, so a caller cannot route a project
// payload into the users collection undetected.
//
// # Lifecycle
//
// A [Store] is constructed once per process with [New] and owns the single
// client connection. [Store.Connect] is explicit but optional: any operation
// invoked first will connect lazily. [Store.Close] is safe to call even when
// the store never connected.
//
// # Operations
//
// CRUD is exposed through [Repo], a typed binding of a Store and a
// Collection:
//
//	repo := store.NewRepo(st, store.Projects)
//	projects, err := repo.All(ctx)
//
// Write-adjacent operations return modified/deleted counts rather than
// failing when nothing happened: "no documents affected" is a valid
// steady-state outcome (an idempotent delete, for instance), while an
// unreachable store or a malformed write is a real error.
//
// # Change feeds
//
// [Repo.Watch] opens a change stream on the collection and invokes the
// callback once per update event that carries a non-empty changed-field set.
// Insert and delete events, and updates with no field deltas, are filtered
// out. The returned [ChangeFeed] must be closed explicitly.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrMissingConfig] - a required store setting is absent
//   - [ErrConnect] - the client could not reach the store
//   - [ErrNotFound] - a referenced document does not exist
//   - [ErrWrite] - an insert/update/delete failed at the store level
package store
