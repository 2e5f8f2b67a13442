package store

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Store owns the process-wide MongoDB client. It is safe for concurrent use;
// the driver multiplexes operations over its connection pool.
type Store struct {
	cfg Config

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// New validates the configuration and returns an unconnected Store. The
// connection is established by Connect, or lazily by the first operation.
func New(cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Store{cfg: cfg}, nil
}

// Connect establishes the client connection and verifies it with a ping.
// Calling Connect on an already-connected store is a no-op.
func (s *Store) Connect(ctx context.Context) error {
	_, err := s.database(ctx)
	return err
}

// database returns the database handle, connecting on first use.
func (s *Store) database(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	s.client = client
	s.db = client.Database(s.cfg.Database)
	return s.db, nil
}

// Close releases the client connection. Safe to call when the store never
// connected.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}
