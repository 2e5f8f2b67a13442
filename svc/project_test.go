package svc

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jacentio/sceneforge/scene"
	"github.com/jacentio/sceneforge/store"
)

func TestProjectCreate(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	s := NewProjectService(docs, discardLogger())

	p, err := s.Create(context.Background(), "Demo")
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if p.Name != "Demo" {
		t.Errorf("expected name 'Demo', got %q", p.Name)
	}
	if len(p.Scene.Content) != 3 {
		t.Errorf("expected 3 starter objects, got %d", len(p.Scene.Content))
	}
	if len(docs.inserted) != 1 {
		t.Fatalf("expected 1 inserted document, got %d", len(docs.inserted))
	}
	if docs.inserted[0].ID != p.ID {
		t.Errorf("expected inserted document to carry the returned id")
	}
}

func TestProjectCreate_EmptyNameDefaultsToID(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	s := NewProjectService(docs, discardLogger())

	p, err := s.Create(context.Background(), "")
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if p.Name != p.ID.Hex() {
		t.Errorf("expected name to default to id %s, got %q", p.ID.Hex(), p.Name)
	}
}

func TestProjectCreate_InsertFailure(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	docs.insertErr = errors.New("write concern timeout")
	s := NewProjectService(docs, discardLogger())

	_, err := s.Create(context.Background(), "Demo")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, docs.insertErr) {
		t.Errorf("expected original cause preserved, got %v", err)
	}
}

func TestProjectUpdate_RejectsNoRecognizedFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
	}{
		{"empty payload", map[string]any{}},
		{"nil payload", nil},
		{"unrecognized only", map[string]any{"name": "rename", "edited_at": time.Now()}},
		{"identifier only", map[string]any{"_id": bson.NewObjectID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := newFakeDocs[scene.Project]()
			s := NewProjectService(docs, discardLogger())

			_, err := s.Update(context.Background(), bson.NewObjectID(), tt.fields)
			if !errors.Is(err, ErrNoUpdatableFields) {
				t.Errorf("expected ErrNoUpdatableFields, got %v", err)
			}
			if len(docs.updatedFields) != 0 {
				t.Error("expected the store to never be called")
			}
		})
	}
}

func TestProjectUpdate_AcceptedPayloads(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
	}{
		{"camera document", map[string]any{"camera": map[string]any{"distance": 2.0}}},
		{"scene document", map[string]any{"scene": map[string]any{}}},
		{"editor document", map[string]any{"editor": map[string]any{"mode": "play"}}},
		{"dotted path", map[string]any{"camera.distance": 2.0}},
		{"mixed with unrecognized", map[string]any{"camera.yaw": 0.1, "edited_by_client": "c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := newFakeDocs[scene.Project]()
			docs.updateN = 1
			s := NewProjectService(docs, discardLogger())

			if _, err := s.Update(context.Background(), bson.NewObjectID(), tt.fields); err != nil {
				t.Errorf("expected update to succeed, got %v", err)
			}
		})
	}
}

func TestProjectUpdate_StampsEditedAt(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	docs.updateN = 1
	s := NewProjectService(docs, discardLogger())

	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Now().UTC()
	stamped, err := s.Update(context.Background(), bson.NewObjectID(), map[string]any{
		"camera":    map[string]any{"yaw": 2.0},
		"edited_at": stale,
	})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if stamped.Before(before) {
		t.Errorf("expected a fresh edited_at stamp, got %v", stamped)
	}

	sent := docs.updatedFields[0]
	got, ok := sent["edited_at"].(time.Time)
	if !ok {
		t.Fatalf("expected edited_at in the stored payload, got %v", sent["edited_at"])
	}
	if got.Equal(stale) {
		t.Error("expected caller-supplied edited_at to be overridden")
	}
	if !got.Equal(stamped) {
		t.Errorf("expected stored stamp %v to match returned %v", got, stamped)
	}
}

func TestProjectUpdate_DoesNotMutateCallerPayload(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	docs.updateN = 1
	s := NewProjectService(docs, discardLogger())

	fields := map[string]any{"camera.yaw": 2.0}
	if _, err := s.Update(context.Background(), bson.NewObjectID(), fields); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if _, ok := fields["edited_at"]; ok {
		t.Error("expected caller's payload to be left untouched")
	}
}

func TestProjectUpdate_ZeroModifiedIsError(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	docs.updateN = 0
	s := NewProjectService(docs, discardLogger())

	id := bson.NewObjectID()
	_, err := s.Update(context.Background(), id, map[string]any{"camera.yaw": 2.0})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected zero-modified promoted to ErrNotFound, got %v", err)
	}
}

func TestProjectDelete(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	docs.deleteN = 1
	s := NewProjectService(docs, discardLogger())

	id := bson.NewObjectID()
	if err := s.Delete(context.Background(), id); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if len(docs.deletedIDs) != 1 || docs.deletedIDs[0] != id {
		t.Errorf("expected delete of %s, got %v", id.Hex(), docs.deletedIDs)
	}
}

func TestProjectDelete_ZeroDeletedIsError(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	docs.deleteN = 0
	s := NewProjectService(docs, discardLogger())

	if err := s.Delete(context.Background(), bson.NewObjectID()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected zero-deleted promoted to ErrNotFound, got %v", err)
	}
}

func TestProjectList_Summaries(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	a := scene.NewProject(bson.NewObjectID(), "a")
	b := scene.NewProject(bson.NewObjectID(), "b")
	docs.all = []scene.Project{a, b}
	s := NewProjectService(docs, discardLogger())

	summaries, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != a.ID || summaries[0].Name != "a" {
		t.Errorf("unexpected first summary %+v", summaries[0])
	}
}

func TestProjectGet_NotFound(t *testing.T) {
	docs := newFakeDocs[scene.Project]()
	s := NewProjectService(docs, discardLogger())

	_, err := s.Get(context.Background(), bson.NewObjectID())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound preserved through the wrap, got %v", err)
	}
}
