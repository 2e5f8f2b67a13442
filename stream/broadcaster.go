package stream

import (
	"log/slog"
	"sync"
)

// Sink receives broadcast updates. Offer must not block; a sink that cannot
// keep up drops the update for itself only.
type Sink interface {
	Offer(Update)
}

// Broadcaster owns the set of connected subscribers and relays each update
// to all of them. Attach and Detach are safe to call while a broadcast is
// in progress. No per-document subscription list is kept: fan-out is
// global and clients filter by document identifier on receipt.
type Broadcaster struct {
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[Sink]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		logger: logger,
		subs:   make(map[Sink]struct{}),
	}
}

// Attach adds a subscriber to the set.
func (b *Broadcaster) Attach(s Sink) {
	b.mu.Lock()
	b.subs[s] = struct{}{}
	n := len(b.subs)
	b.mu.Unlock()
	b.logger.Info("subscriber connected", "subscribers", n)
}

// Detach removes a subscriber. Detaching an unknown subscriber is a no-op.
func (b *Broadcaster) Detach(s Sink) {
	b.mu.Lock()
	delete(b.subs, s)
	n := len(b.subs)
	b.mu.Unlock()
	b.logger.Info("subscriber disconnected", "subscribers", n)
}

// Count returns the number of attached subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Broadcast offers the update to every attached subscriber, at most once
// each, fire-and-forget. Zero subscribers is a no-op. Calling Broadcast on
// a broadcaster that was never constructed with NewBroadcaster returns
// ErrNotInitialized.
func (b *Broadcaster) Broadcast(u Update) error {
	if b == nil || b.subs == nil {
		return ErrNotInitialized
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs {
		s.Offer(u)
	}
	return nil
}
