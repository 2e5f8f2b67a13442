package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Repo binds a Store to one typed collection and carries the CRUD surface.
// A Repo is cheap to construct and safe for concurrent use.
type Repo[T any] struct {
	store *Store
	col   Collection[T]
}

// NewRepo creates a typed repository over a collection.
func NewRepo[T any](s *Store, c Collection[T]) *Repo[T] {
	return &Repo[T]{store: s, col: c}
}

// Collection returns the collection handle this repo operates on.
func (r *Repo[T]) Collection() Collection[T] { return r.col }

func (r *Repo[T]) coll(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.store.database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(r.col.name), nil
}

// All returns every document in the collection. An empty collection yields
// an empty slice, never an error.
func (r *Repo[T]) All(ctx context.Context) ([]T, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find all in %s: %w", r.col.name, err)
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode all in %s: %w", r.col.name, err)
	}
	return docs, nil
}

// ByID returns the document with the given identifier, or ErrNotFound.
func (r *Repo[T]) ByID(ctx context.Context, id bson.ObjectID) (T, error) {
	var doc T
	found, err := r.ByField(ctx, "_id", id)
	if err != nil {
		return doc, err
	}
	if found == nil {
		return doc, fmt.Errorf("%w: id %s in %s", ErrNotFound, id.Hex(), r.col.name)
	}
	return *found, nil
}

// ByField returns the first document whose field equals value, or nil when
// no document matches. A missing document is not an error at this layer.
func (r *Repo[T]) ByField(ctx context.Context, field string, value any) (*T, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}
	var doc T
	err = coll.FindOne(ctx, bson.M{field: value}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s=%v in %s: %w", field, value, r.col.name, err)
	}
	return &doc, nil
}

// Insert persists a new document and returns the value of its identifier
// field. Store-level failures, including duplicate-identifier conflicts,
// surface as ErrWrite with the cause preserved.
func (r *Repo[T]) Insert(ctx context.Context, doc T) (bson.ObjectID, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return bson.ObjectID{}, err
	}
	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: insert into %s: %w", ErrWrite, r.col.name, err)
	}
	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("%w: insert into %s returned non-ObjectID key %v", ErrWrite, r.col.name, result.InsertedID)
	}
	return id, nil
}

// Update applies a field-level merge to the stored document and returns the
// number of documents modified (0 or 1). The identifier field is stripped
// from the payload first; identifiers are immutable once assigned. A zero
// count means "not found or no-op" and is not an error at this layer.
func (r *Repo[T]) Update(ctx context.Context, id bson.ObjectID, fields map[string]any) (int64, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return 0, err
	}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": withoutID(fields)})
	if err != nil {
		return 0, fmt.Errorf("%w: update %s in %s: %w", ErrWrite, id.Hex(), r.col.name, err)
	}
	return result.ModifiedCount, nil
}

// Delete removes the document and returns the number deleted (0 or 1). A
// missing identifier yields 0, not an error: delete is idempotent.
func (r *Repo[T]) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return 0, err
	}
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("%w: delete %s from %s: %w", ErrWrite, id.Hex(), r.col.name, err)
	}
	return result.DeletedCount, nil
}

// withoutID returns fields with any identifier key removed. The input map is
// not mutated; callers may reuse their payload.
func withoutID(fields map[string]any) map[string]any {
	if _, ok := fields["_id"]; !ok {
		return fields
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
