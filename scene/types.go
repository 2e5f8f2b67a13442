// Package scene defines the document shapes persisted for the 3D editor:
// projects (scene graph, camera pose, editor state) and user accounts.
//
// The types here mirror the wire format exchanged with editor clients, so
// every field carries both bson and json tags with the client-side names.
package scene

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Vec3 is an xyz triple, serialized as a 3-element array.
type Vec3 [3]float64

// ObjType identifies a primitive scene object kind.
type ObjType string

// Primitive object kinds available in the editor.
const (
	ObjSphere ObjType = "sphere"
	ObjCube   ObjType = "cube"
	ObjCone   ObjType = "cone"
)

// Transform positions an object state in the scene.
type Transform struct {
	Position Vec3 `bson:"position" json:"position"`
	Rotation Vec3 `bson:"rotation" json:"rotation"`
	Scale    Vec3 `bson:"scale" json:"scale"`
}

// ObjState is one animatable state of a scene object. Trigger and
// TransitionTo drive state changes in play mode; both may be empty.
type ObjState struct {
	ID           string    `bson:"id" json:"id"`
	Transform    Transform `bson:"transform" json:"transform"`
	Trigger      string    `bson:"trigger" json:"trigger"`
	TransitionTo string    `bson:"transitionTo" json:"transitionTo"`
}

// SceneObj is one object in the scene graph with its states.
type SceneObj struct {
	Type   ObjType    `bson:"type" json:"type"`
	Name   string     `bson:"name" json:"name"`
	States []ObjState `bson:"states" json:"states"`
}

// SceneData is the scene graph: light plus objects keyed by object id.
type SceneData struct {
	LightPosition Vec3                `bson:"lightPosition" json:"lightPosition"`
	Content       map[string]SceneObj `bson:"content" json:"content"`
}

// EditorData is per-document editor cursor state shared between clients.
type EditorData struct {
	Mode           string         `bson:"mode" json:"mode"`
	SelectedObjID  string         `bson:"selectedObjId,omitempty" json:"selectedObjId,omitempty"`
	ObjStateIdxMap map[string]int `bson:"objStateIdxMap" json:"objStateIdxMap"`
}

// CameraData is the shared camera pose.
type CameraData struct {
	Distance float64 `bson:"distance" json:"distance"`
	Origin   Vec3    `bson:"origin" json:"origin"`
	Yaw      float64 `bson:"yaw" json:"yaw"`
	Pitch    float64 `bson:"pitch" json:"pitch"`
}

// Project is one editor document.
type Project struct {
	ID             bson.ObjectID `bson:"_id" json:"_id"`
	Name           string        `bson:"name" json:"name"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	EditedAt       time.Time     `bson:"edited_at" json:"edited_at"`
	EditedByClient string        `bson:"edited_by_client" json:"edited_by_client"`
	Editor         EditorData    `bson:"editor" json:"editor"`
	Camera         CameraData    `bson:"camera" json:"camera"`
	Scene          SceneData     `bson:"scene" json:"scene"`
}

// ProjectSummary is the listing view of a project: enough to render a
// project picker without shipping the scene graph.
type ProjectSummary struct {
	ID       bson.ObjectID `bson:"_id" json:"_id"`
	Name     string        `bson:"name" json:"name"`
	EditedAt time.Time     `bson:"edited_at" json:"edited_at"`
}

// Summary reduces a project to its listing view.
func (p Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Name: p.Name, EditedAt: p.EditedAt}
}

// User is one registered account. PasswordHash is the bcrypt hash; the
// plaintext password is never stored.
type User struct {
	ID           bson.ObjectID `bson:"_id" json:"_id"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"password" json:"-"`
	DisplayName  string        `bson:"displayName" json:"displayName"`
}

// PublicUser is the externally visible view of a user.
type PublicUser struct {
	ID          bson.ObjectID `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"displayName"`
}

// Public strips credential material from a user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}
