// Package mouse provides the pointer event types consumed by the viewport
// selection controller.
//
// Event represents a raw pointer input event with position, button,
// modifiers and action type:
//
//	event := mouse.Event{
//	    Position:  geom.Pt(100, 50),
//	    Button:    mouse.ButtonLeft,
//	    Modifiers: key.ModNone,
//	    Action:    mouse.ActionPress,
//	}
//
// # Drag Tracking
//
// DragTracker records where a button went down and whether the pointer has
// since moved farther than the drag threshold. Until the threshold is
// crossed a press/release pair is a click; afterwards it is a drag and the
// tracker stays in the dragging state until the button is released or the
// gesture is cancelled.
package mouse
