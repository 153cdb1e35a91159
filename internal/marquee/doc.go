// Package marquee implements rectangle selection and the click rules that
// apply when a press is released before it became a drag.
//
// A gesture is Idle until the pointer moves further than the drag threshold
// from the press point. While dragging, every Move and every frame Tick
// queries the rectangle and recombines the selection, but only when the set
// of candidates or the modifier-derived mode actually changed.
package marquee
