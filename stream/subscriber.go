package stream

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
)

const subscriberQueueSize = 32

// Subscriber is one connected realtime client. Updates are queued and
// written to the websocket by Run; a full queue drops the incoming event so
// that Offer never blocks.
type Subscriber struct {
	conn *websocket.Conn

	mu     sync.Mutex
	queue  chan Update
	closed bool
}

// NewSubscriber wraps an upgraded websocket connection.
func NewSubscriber(conn *websocket.Conn) *Subscriber {
	return &Subscriber{
		conn:  conn,
		queue: make(chan Update, subscriberQueueSize),
	}
}

// Offer queues an update for delivery. It never blocks: if this
// subscriber's queue is full the update is dropped for this subscriber
// only. Offer after Close is a no-op.
func (s *Subscriber) Offer(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- u:
	default:
	}
}

// Close stops accepting updates and lets Run drain and return. Idempotent.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
}

// Run writes queued updates to the connection until ctx is canceled, the
// subscriber is closed, or a write fails. The connection is closed on
// return. The caller is responsible for detaching the subscriber from its
// broadcaster.
func (s *Subscriber) Run(ctx context.Context) error {
	defer s.conn.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-s.queue:
			if !ok {
				return nil
			}
			if err := s.conn.WriteJSON(u); err != nil {
				return err
			}
		}
	}
}
