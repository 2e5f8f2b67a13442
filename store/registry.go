package store

import (
	"fmt"
	"sort"

	"github.com/jacentio/sceneforge/scene"
)

// Collection is a typed handle binding a collection name to its document
// type. Handles are created with NewCollection at package init time; the
// name-to-kind mapping never changes while the process runs.
type Collection[T any] struct {
	name string
}

// Name returns the store-side collection name.
func (c Collection[T]) Name() string { return c.name }

// The collections sceneforge persists.
var (
	Projects = NewCollection[scene.Project]("projects")
	Users    = NewCollection[scene.User]("users")
)

// registered tracks every collection name claimed through NewCollection.
// Mutated only during package initialization.
var registered = map[string]struct{}{}

// NewCollection registers a typed collection handle. Registering the same
// name twice is a programming error and panics at init time.
func NewCollection[T any](name string) Collection[T] {
	if name == "" {
		panic("store: collection name must not be empty")
	}
	if _, dup := registered[name]; dup {
		panic(fmt.Sprintf("store: collection %q registered twice", name))
	}
	registered[name] = struct{}{}
	return Collection[T]{name: name}
}

// IsRegistered reports whether a collection name has a typed handle.
func IsRegistered(name string) bool {
	_, ok := registered[name]
	return ok
}

// Names returns all registered collection names, sorted.
func Names() []string {
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
