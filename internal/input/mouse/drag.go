package mouse

import "github.com/dshills/scenepick/internal/geom"

// DefaultDragThreshold is the displacement in pixels a pressed pointer must
// exceed before a press becomes a drag.
const DefaultDragThreshold = 6.0

// DragTracker tracks the state of one press/move/release gesture.
type DragTracker struct {
	threshold float64

	// pressed indicates a button is held.
	pressed bool

	// dragging indicates the threshold was crossed since the press.
	dragging bool

	// button is the mouse button being held.
	button Button

	// startPos is where the press happened.
	startPos geom.Point

	// currentPos is the latest pointer position.
	currentPos geom.Point
}

// NewDragTracker creates a tracker with the given threshold. Non-positive
// thresholds fall back to DefaultDragThreshold.
func NewDragTracker(threshold float64) *DragTracker {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &DragTracker{threshold: threshold}
}

// Start begins a new gesture.
func (t *DragTracker) Start(pos geom.Point, button Button) {
	t.pressed = true
	t.dragging = false
	t.button = button
	t.startPos = pos
	t.currentPos = pos
}

// Update records the current pointer position and reports whether this
// update crossed the threshold for the first time.
func (t *DragTracker) Update(pos geom.Point) bool {
	if !t.pressed {
		return false
	}
	t.currentPos = pos
	if t.dragging {
		return false
	}
	if t.startPos.Exceeds(pos, t.threshold) {
		t.dragging = true
		return true
	}
	return false
}

// End finishes the gesture and clears all state.
func (t *DragTracker) End() {
	t.pressed = false
	t.dragging = false
	t.button = ButtonNone
	t.startPos = geom.Point{}
	t.currentPos = geom.Point{}
}

// Pressed returns true while a button is held.
func (t *DragTracker) Pressed() bool {
	return t.pressed
}

// Dragging returns true once the threshold has been crossed.
func (t *DragTracker) Dragging() bool {
	return t.dragging
}

// Button returns the button being held during the gesture.
func (t *DragTracker) Button() Button {
	return t.button
}

// StartPos returns where the gesture began.
func (t *DragTracker) StartPos() geom.Point {
	return t.startPos
}

// CurrentPos returns the latest pointer position.
func (t *DragTracker) CurrentPos() geom.Point {
	return t.currentPos
}

// Threshold returns the drag threshold in pixels.
func (t *DragTracker) Threshold() float64 {
	return t.threshold
}

// Rect returns the normalized rectangle between the press and current positions.
func (t *DragTracker) Rect() geom.Rect {
	return geom.RectBetween(t.startPos, t.currentPos)
}

// DragState is a snapshot of the tracker.
type DragState struct {
	Pressed    bool
	Dragging   bool
	Button     Button
	StartPos   geom.Point
	CurrentPos geom.Point
}

// State returns the current drag state.
func (t *DragTracker) State() DragState {
	return DragState{
		Pressed:    t.pressed,
		Dragging:   t.dragging,
		Button:     t.button,
		StartPos:   t.startPos,
		CurrentPos: t.currentPos,
	}
}
