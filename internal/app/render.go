package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// render redraws the transcript, the input row and the status line.
func (app *Application) render() {
	surface := app.surface
	if surface == nil {
		return
	}

	w, h := surface.Size()
	if w <= 0 || h < 2 {
		return
	}
	surface.Clear()

	content := h - 2
	items := app.workspace.Transcript(content)
	for i, item := range items {
		surface.SetLine(content-len(items)+i, item, tcell.StyleDefault)
	}

	label, pending, at := app.workspace.Line()
	if at > len(pending) {
		at = len(pending)
	}
	surface.SetLine(h-2, label+pending, tcell.StyleDefault)

	caret := uniseg.StringWidth(label + pending[:at])
	if caret >= w {
		caret = w - 1
	}
	surface.ShowCursor(caret, h-2)

	surface.SetLine(h-1, app.statusLine(), tcell.StyleDefault.Reverse(true))
	surface.Show()
}

// statusLine composes the bottom row: the focused context, its history
// depth and the latest message.
func (app *Application) statusLine() string {
	kind := app.workspace.ActiveKind()
	line := fmt.Sprintf("[%s] %d items", kind, app.workspace.StoreDepth())
	if msg := app.Status(); msg != "" {
		line += "  " + msg
	}
	return line
}
