package domain

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is a raw pencil stroke handed to a shape recognizer.
type Stroke struct {
	Points []Point `json:"points"`
}

// ShapeKind is what a recognizer decided a stroke was.
type ShapeKind string

const (
	ShapeState      ShapeKind = "state"
	ShapeTransition ShapeKind = "transition"
	ShapeCycle      ShapeKind = "cycle"
)

// Shape is a recognized stroke. Geometry has already been resolved by the UI:
// endpoints and enclosing states are given as state IDs.
type Shape struct {
	Kind ShapeKind `json:"kind"`

	// EnclosingStateID is set when a state circle was drawn inside an existing
	// state, which marks that state as final.
	EnclosingStateID string `json:"enclosing_state_id,omitempty"`

	FromStateID *string `json:"from_state_id,omitempty"`
	ToStateID   *string `json:"to_state_id,omitempty"`
}
