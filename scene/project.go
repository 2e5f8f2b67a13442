package scene

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// NewProject builds the default document for a freshly created project:
// default camera pose, edit mode with nothing selected, and the starter
// scene. CreatedAt and EditedAt are both set to now.
func NewProject(id bson.ObjectID, name string) Project {
	now := time.Now().UTC()
	return Project{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		EditedAt:  now,
		Editor: EditorData{
			Mode:           "edit",
			ObjStateIdxMap: map[string]int{},
		},
		Camera: CameraData{
			Distance: 1,
			Origin:   Vec3{0, 0, 0},
			Yaw:      1.5,
			Pitch:    -0.3,
		},
		Scene: SceneData{
			LightPosition: Vec3{0.5, 0.5, 0.25},
			Content:       StarterContent(),
		},
	}
}

// StarterContent returns the canned starter scene: a sphere, a cube and a
// cone, each with a single default state. Object keys and state ids are
// freshly generated UUIDs, so every call yields distinct identifiers.
func StarterContent() map[string]SceneObj {
	return map[string]SceneObj{
		uuid.NewString(): starterObj(ObjSphere, "Sphere", Vec3{0.2, 0.05, 0}),
		uuid.NewString(): starterObj(ObjCube, "Cube", Vec3{0, 0, 0.2}),
		uuid.NewString(): starterObj(ObjCone, "Cone", Vec3{0, 0, -0.2}),
	}
}

func starterObj(typ ObjType, name string, position Vec3) SceneObj {
	return SceneObj{
		Type: typ,
		Name: name,
		States: []ObjState{{
			ID: uuid.NewString(),
			Transform: Transform{
				Position: position,
				Rotation: Vec3{0, 0, 0},
				Scale:    Vec3{1, 1, 1},
			},
		}},
	}
}
