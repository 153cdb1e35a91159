// Package key defines the keyboard modifier state the viewport reads while
// resolving clicks and marquee drags.
//
// Selection gestures only care about which modifiers are held, not about key
// events themselves:
//
//   - Shift: additive click/marquee, or deselect when clicking the active object
//   - Action: subtractive marquee, or deselect when clicking any selected object
//
// The action modifier is platform dependent (Cmd on macOS, Ctrl elsewhere)
// and can be overridden from configuration.
package key
