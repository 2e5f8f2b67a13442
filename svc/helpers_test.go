package svc

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jacentio/sceneforge/store"
)

// fakeDocs is an in-memory DocStore with injectable failures.
type fakeDocs[T any] struct {
	all     []T
	allErr  error
	byID    map[string]T
	byField map[string]*T // keyed "field=value"

	inserted  []T
	insertErr error

	updatedIDs    []bson.ObjectID
	updatedFields []map[string]any
	updateN       int64
	updateErr     error

	deletedIDs []bson.ObjectID
	deleteN    int64
	deleteErr  error
}

func newFakeDocs[T any]() *fakeDocs[T] {
	return &fakeDocs[T]{
		byID:    map[string]T{},
		byField: map[string]*T{},
	}
}

func fieldKey(field string, value any) string {
	return fmt.Sprintf("%s=%v", field, value)
}

func (f *fakeDocs[T]) All(ctx context.Context) ([]T, error) {
	return f.all, f.allErr
}

func (f *fakeDocs[T]) ByID(ctx context.Context, id bson.ObjectID) (T, error) {
	doc, ok := f.byID[id.Hex()]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %s", store.ErrNotFound, id.Hex())
	}
	return doc, nil
}

func (f *fakeDocs[T]) ByField(ctx context.Context, field string, value any) (*T, error) {
	return f.byField[fieldKey(field, value)], nil
}

func (f *fakeDocs[T]) Insert(ctx context.Context, doc T) (bson.ObjectID, error) {
	if f.insertErr != nil {
		return bson.ObjectID{}, f.insertErr
	}
	f.inserted = append(f.inserted, doc)
	return bson.NewObjectID(), nil
}

func (f *fakeDocs[T]) Update(ctx context.Context, id bson.ObjectID, fields map[string]any) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.updatedIDs = append(f.updatedIDs, id)
	f.updatedFields = append(f.updatedFields, fields)
	return f.updateN, nil
}

func (f *fakeDocs[T]) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteN, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIssuer() *TokenIssuer {
	issuer, err := NewTokenIssuer([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return issuer
}
