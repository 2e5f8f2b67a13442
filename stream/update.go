package stream

// Update is the wire message sent to subscribers on a project mutation: the
// external form of the document identifier plus the exact field-level delta
// the store reported. No acknowledgment is expected.
type Update struct {
	DocID  string         `json:"projectId"`
	Fields map[string]any `json:"updatedFields"`
}
