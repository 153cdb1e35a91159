package tui

import "github.com/gdamore/tcell/v2"

var (
	styleObject        = tcell.StyleDefault
	styleSelected      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleActive        = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true).Reverse(true)
	stylePreviewChild  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	stylePreviewParent = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleMarquee       = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleMenu          = tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	styleMenuHover     = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorDarkBlue)
	styleStatus        = tcell.StyleDefault.Reverse(true)
)
