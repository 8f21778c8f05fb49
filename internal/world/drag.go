package world

import "github.com/san-kum/worldsim/internal/object"

type DragKind int

const (
	DragIdle DragKind = iota
	DragEmptyArea
	DragObject
)

func (k DragKind) String() string {
	switch k {
	case DragIdle:
		return "idle"
	case DragEmptyArea:
		return "dragging_empty_area"
	case DragObject:
		return "dragging_object"
	default:
		return "unknown"
	}
}

// DragState is the pointer gesture in progress. ObjectID is only meaningful
// for DragObject.
type DragState struct {
	Kind     DragKind
	ObjectID object.ID
}
