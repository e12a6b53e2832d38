package domain

// Point is a 2D offset in canvas units.
type Point struct {
	X float64
	Y float64
}

// ViewTransform is the zoom scale and pan offset applied to the preview canvas.
type ViewTransform struct {
	Scale float64
	Pan   Point
}

// IdentityTransform returns scale 1.0 with no pan.
func IdentityTransform() ViewTransform {
	return ViewTransform{Scale: 1.0}
}

// Action is a logical workspace command triggered by a shortcut.
type Action int

// Workspace actions.
const (
	ActionNone Action = iota
	ActionPreviousSlide
	ActionNextSlide
	ActionZoomIn
	ActionZoomOut
	ActionResetView
	ActionFitView
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPreviousSlide:
		return "previous_slide"
	case ActionNextSlide:
		return "next_slide"
	case ActionZoomIn:
		return "zoom_in"
	case ActionZoomOut:
		return "zoom_out"
	case ActionResetView:
		return "reset_view"
	case ActionFitView:
		return "fit_view"
	default:
		return "none"
	}
}
