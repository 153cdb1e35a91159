package mouse

import (
	"time"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
)

// Button identifies a pointer button.
type Button uint8

// Buttons the viewport distinguishes. Left drives clicks and rectangles,
// right opens the piercing menu.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

var buttonNames = [...]string{"none", "left", "middle", "right"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return buttonNames[ButtonNone]
}

// Action is what happened to the pointer.
type Action uint8

// Drag is a move with a button held; Move has no button held.
const (
	ActionNone Action = iota
	ActionPress
	ActionRelease
	ActionMove
	ActionDrag
)

var actionNames = [...]string{"none", "press", "release", "move", "drag"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return actionNames[ActionNone]
}

// Event is one pointer report in viewport coordinates.
type Event struct {
	Position  geom.Point
	Button    Button
	Action    Action
	Modifiers key.Modifier
	Timestamp time.Time
}

// Pressed reports whether ev is a press of b.
func (ev Event) Pressed(b Button) bool {
	return ev.Action == ActionPress && ev.Button == b
}

// Moved reports whether ev moves the pointer, with or without a button held.
func (ev Event) Moved() bool {
	return ev.Action == ActionMove || ev.Action == ActionDrag
}
