package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// UpdateFunc receives the identifier of an updated document and the exact
// field-level delta reported by the store. It is invoked from the feed's own
// goroutine, one event at a time, in the store's commit order.
type UpdateFunc func(id bson.ObjectID, fields map[string]any)

// changeEvent is the slice of a change stream document the feed cares about.
type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID bson.ObjectID `bson:"_id"`
	} `bson:"documentKey"`
	UpdateDescription struct {
		UpdatedFields map[string]any `bson:"updatedFields"`
	} `bson:"updateDescription"`
}

// qualifies reports whether the event should reach the callback: only
// update operations carrying a non-empty changed-field set do. The store's
// own delta is trusted; the feed never synthesizes a full-document diff.
func (e changeEvent) qualifies() bool {
	return e.OperationType == "update" && len(e.UpdateDescription.UpdatedFields) > 0
}

// ChangeFeed is a live change stream on one collection. It must be released
// with Close; after Close returns, no further callback invocations occur.
type ChangeFeed struct {
	cs     *mongo.ChangeStream
	cancel context.CancelFunc
	done   chan struct{}
	err    error // written once before done is closed
}

// Watch opens a persistent change feed on the repo's collection. The
// callback runs on the feed's goroutine; a feed-level error (for instance a
// dropped connection) terminates the feed and is reported by Err after Done
// is closed. The feed outlives ctx's cancellation; only Close stops it.
func (r *Repo[T]) Watch(ctx context.Context, fn UpdateFunc) (*ChangeFeed, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWatch, r.col.name, err)
	}

	pumpCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &ChangeFeed{cs: cs, cancel: cancel, done: make(chan struct{})}
	go f.pump(pumpCtx, fn)
	return f, nil
}

func (f *ChangeFeed) pump(ctx context.Context, fn UpdateFunc) {
	defer close(f.done)

	for f.cs.Next(ctx) {
		var ev changeEvent
		if err := f.cs.Decode(&ev); err != nil {
			// An undecodable event is a driver-level surprise; skip it
			// rather than kill the feed.
			continue
		}
		if !ev.qualifies() {
			continue
		}
		fn(ev.DocumentKey.ID, ev.UpdateDescription.UpdatedFields)
	}

	if err := f.cs.Err(); err != nil && !errors.Is(err, context.Canceled) {
		f.err = err
	}

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	_ = f.cs.Close(closeCtx)
}

// Close stops the feed and releases the underlying change stream. Safe to
// call while a callback is mid-execution; Close waits for the pump to drain
// unless ctx expires first.
func (f *ChangeFeed) Close(ctx context.Context) error {
	f.cancel()
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the feed has stopped, whether by Close or by a
// feed-level error.
func (f *ChangeFeed) Done() <-chan struct{} { return f.done }

// Err reports why the feed stopped. It returns nil for a clean Close and
// must only be called after Done is closed.
func (f *ChangeFeed) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
