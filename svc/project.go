package svc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jacentio/sceneforge/scene"
	"github.com/jacentio/sceneforge/store"
)

// DocStore is the slice of the store layer a service needs for one document
// kind. Satisfied by *store.Repo[T].
type DocStore[T any] interface {
	All(ctx context.Context) ([]T, error)
	ByID(ctx context.Context, id bson.ObjectID) (T, error)
	ByField(ctx context.Context, field string, value any) (*T, error)
	Insert(ctx context.Context, doc T) (bson.ObjectID, error)
	Update(ctx context.Context, id bson.ObjectID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id bson.ObjectID) (int64, error)
}

// ProjectService manages editor project documents.
type ProjectService struct {
	docs   DocStore[scene.Project]
	logger *slog.Logger
}

// NewProjectService creates a project service over a project store.
func NewProjectService(docs DocStore[scene.Project], logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{docs: docs, logger: logger}
}

// updatableRoots are the document fields a project update may touch. A
// payload addressing none of them is a no-op request and is rejected.
var updatableRoots = map[string]bool{
	"scene":  true,
	"editor": true,
	"camera": true,
}

// hasUpdatableField reports whether any payload key, taken up to its first
// path separator, addresses a recognized document field.
func hasUpdatableField(fields map[string]any) bool {
	for k := range fields {
		root, _, _ := strings.Cut(k, ".")
		if updatableRoots[root] {
			return true
		}
	}
	return false
}

// List returns the summary view of every project.
func (s *ProjectService) List(ctx context.Context) ([]scene.ProjectSummary, error) {
	projects, err := s.docs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	summaries := make([]scene.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = p.Summary()
	}
	return summaries, nil
}

// Get returns the full document for one project.
func (s *ProjectService) Get(ctx context.Context, id bson.ObjectID) (scene.Project, error) {
	p, err := s.docs.ByID(ctx, id)
	if err != nil {
		return scene.Project{}, fmt.Errorf("failed to get project with id %s: %w", id.Hex(), err)
	}
	return p, nil
}

// Create builds and persists a default project document. An empty name
// defaults to the new identifier's hex form.
func (s *ProjectService) Create(ctx context.Context, name string) (scene.Project, error) {
	id := bson.NewObjectID()
	if name == "" {
		name = id.Hex()
	}
	p := scene.NewProject(id, name)
	if _, err := s.docs.Insert(ctx, p); err != nil {
		return scene.Project{}, fmt.Errorf("failed to add project %s: %w", p.Name, err)
	}
	s.logger.Info("project created", "id", id.Hex(), "name", p.Name)
	return p, nil
}

// Update applies a partial field-level merge to a project. The payload must
// address at least one of scene, editor or camera; a fresh edited_at stamp
// is always applied, overriding any caller-supplied value. The stamped time
// is returned. A zero modified count is an error here: the service contract
// guarantees the referenced project exists.
func (s *ProjectService) Update(ctx context.Context, id bson.ObjectID, fields map[string]any) (time.Time, error) {
	if !hasUpdatableField(fields) {
		return time.Time{}, ErrNoUpdatableFields
	}

	editedAt := time.Now().UTC()
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["edited_at"] = editedAt

	n, err := s.docs.Update(ctx, id, merged)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update project with id %s: %w", id.Hex(), err)
	}
	if n == 0 {
		return time.Time{}, fmt.Errorf("failed to update project with id %s: %w", id.Hex(), store.ErrNotFound)
	}
	return editedAt, nil
}

// Delete removes a project. A zero deleted count is promoted to an error at
// this layer.
func (s *ProjectService) Delete(ctx context.Context, id bson.ObjectID) error {
	n, err := s.docs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project with id %s: %w", id.Hex(), err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete project with id %s: %w", id.Hex(), store.ErrNotFound)
	}
	s.logger.Info("project deleted", "id", id.Hex())
	return nil
}
