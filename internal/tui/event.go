package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/input/mouse"
)

const buttonMask = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// Translator turns tcell mouse reports, which carry only the buttons held
// right now, into press, drag, move and release events.
type Translator struct {
	prev tcell.ButtonMask
}

// Mouse converts one tcell mouse event.
func (t *Translator) Mouse(ev *tcell.EventMouse) mouse.Event {
	x, y := ev.Position()
	held := ev.Buttons() & buttonMask

	out := mouse.Event{
		Position:  geom.Pt(x, y),
		Modifiers: Modifiers(ev.Modifiers()),
		Timestamp: ev.When(),
	}
	switch {
	case t.prev == 0 && held != 0:
		out.Action = mouse.ActionPress
		out.Button = convertButton(held)
	case t.prev != 0 && held == 0:
		out.Action = mouse.ActionRelease
		out.Button = convertButton(t.prev)
	case held != 0:
		out.Action = mouse.ActionDrag
		out.Button = convertButton(held)
	default:
		out.Action = mouse.ActionMove
	}
	t.prev = held
	return out
}

// Reset forgets held buttons, used when focus is lost mid-gesture.
func (t *Translator) Reset() {
	t.prev = 0
}

// Modifiers converts a tcell modifier mask.
func Modifiers(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= key.ModMeta
	}
	return out
}

func convertButton(b tcell.ButtonMask) mouse.Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return mouse.ButtonLeft
	case b&tcell.ButtonSecondary != 0:
		return mouse.ButtonRight
	case b&tcell.ButtonMiddle != 0:
		return mouse.ButtonMiddle
	default:
		return mouse.ButtonNone
	}
}
