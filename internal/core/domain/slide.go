package domain

// Slide is one rendered slide document within a deck.
type Slide struct {
	// ID is an opaque identifier, unique within a deck. Never empty.
	ID string

	// Path locates the slide document (file path or asset URL path).
	Path string

	// Thumbnail optionally references a preview image.
	Thumbnail string

	// Index is the position hint supplied when the slide was discovered.
	// It is not updated by reordering; use the deck's order instead.
	Index int
}

// ReorderCommand is a request to move the slide at From to position To.
type ReorderCommand struct {
	From int
	To   int
}

// DeckEventKind identifies what changed in a deck.
type DeckEventKind int

const (
	// DeckSlidesReplaced means the whole collection was rebuilt.
	DeckSlidesReplaced DeckEventKind = iota
	// DeckReordered means one slide moved.
	DeckReordered
	// DeckSelectionChanged means the current slide changed.
	DeckSelectionChanged
)

// String returns the string representation of the event kind.
func (k DeckEventKind) String() string {
	switch k {
	case DeckSlidesReplaced:
		return "slides_replaced"
	case DeckReordered:
		return "reordered"
	case DeckSelectionChanged:
		return "selection_changed"
	default:
		return "unknown"
	}
}

// DeckEvent describes a single deck mutation.
type DeckEvent struct {
	Kind DeckEventKind

	// SlideID is the selected slide for selection events
	// and the moved slide for reorder events.
	SlideID string

	// From and To are set for reorder events.
	From int
	To   int
}
