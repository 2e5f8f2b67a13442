package stream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jacentio/sceneforge/store"
)

// Feed is the slice of a store change feed the watcher needs. Satisfied by
// *store.ChangeFeed.
type Feed interface {
	Close(ctx context.Context) error
	Done() <-chan struct{}
	Err() error
}

// OpenFeed opens a change feed delivering update deltas to fn.
type OpenFeed func(ctx context.Context, fn store.UpdateFunc) (Feed, error)

// Watcher runs the long-lived change feed on a collection and queues
// qualifying events for delivery. It is started once at process startup and
// stopped once at shutdown; Start and Stop are safe to call concurrently
// but a watcher holds at most one live feed at a time.
type Watcher struct {
	open    OpenFeed
	logger  *slog.Logger
	updates chan Update

	mu      sync.Mutex
	feed    Feed
	feedErr error
}

const updateQueueSize = 256

// NewWatcher creates a watcher over an arbitrary feed source.
func NewWatcher(open OpenFeed, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		open:    open,
		logger:  logger,
		updates: make(chan Update, updateQueueSize),
	}
}

// NewProjectWatcher creates a watcher over the projects collection of s.
func NewProjectWatcher(s *store.Store, logger *slog.Logger) *Watcher {
	repo := store.NewRepo(s, store.Projects)
	return NewWatcher(func(ctx context.Context, fn store.UpdateFunc) (Feed, error) {
		return repo.Watch(ctx, fn)
	}, logger)
}

// Updates returns the channel of queued update events. The channel is never
// closed; consumers stop via their own context.
func (w *Watcher) Updates() <-chan Update { return w.updates }

// Start opens the change feed. It returns ErrAlreadyWatching when a feed is
// already live.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.feed != nil {
		return ErrAlreadyWatching
	}

	feed, err := w.open(ctx, w.enqueue)
	if err != nil {
		return fmt.Errorf("start change feed: %w", err)
	}
	w.feed = feed
	w.feedErr = nil
	go w.monitor(feed)

	w.logger.Info("watching for document updates")
	return nil
}

// Stop closes the live feed, waiting for in-flight callbacks to drain. It
// returns ErrNotWatching when no feed is live. If the feed had already
// terminated on a feed-level error, that error is returned. The watcher
// stays in its watching state until the feed is fully released, so a
// concurrent Start cannot open a second feed while one is draining; if
// Close fails the feed remains held and Stop may be retried.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.feed == nil {
		return ErrNotWatching
	}
	feed := w.feed
	if err := feed.Close(ctx); err != nil {
		return fmt.Errorf("close change feed: %w", err)
	}
	w.feed = nil
	w.logger.Info("stopped watching for document updates")
	return feed.Err()
}

// Err reports the feed-level error that terminated the watch, if any. A
// watcher in this state is no longer delivering events; the owner decides
// whether to Stop and restart it.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.feedErr
}

// enqueue is the feed callback. It must not block: a full queue drops the
// event and the clients reconcile on their next authoritative read.
func (w *Watcher) enqueue(id bson.ObjectID, fields map[string]any) {
	u := Update{DocID: id.Hex(), Fields: fields}
	select {
	case w.updates <- u:
	default:
		w.logger.Warn("update queue full, dropping event", "doc", u.DocID)
	}
}

// monitor surfaces feed-level termination. A network error ends the feed's
// watching state but never crashes the process.
func (w *Watcher) monitor(feed Feed) {
	<-feed.Done()
	if err := feed.Err(); err != nil {
		w.mu.Lock()
		if w.feed == feed {
			w.feedErr = err
		}
		w.mu.Unlock()
		w.logger.Error("change feed terminated", "error", err)
	}
}

// Relay consumes updates and hands each one to the broadcaster, preserving
// the order received from the feed. It returns when ctx is canceled, or
// with the broadcaster's error if broadcasting fails.
func Relay(ctx context.Context, updates <-chan Update, b *Broadcaster) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u := <-updates:
			if err := b.Broadcast(u); err != nil {
				return err
			}
		}
	}
}
