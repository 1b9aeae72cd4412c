package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/histkit/recall/internal/dispatch"
	"github.com/histkit/recall/internal/ui"
)

// eventLoop pumps surface events until quit is requested or the
// surface is lost. While the selector is open it polls the same
// surface itself, so its events never pass through here.
func (app *Application) eventLoop() error {
	app.render()

	for {
		select {
		case <-app.done:
			return ErrQuit
		default:
		}

		ev := app.surface.PollEvent()
		if ev == nil {
			select {
			case <-app.done:
				return ErrQuit
			default:
			}
			return ui.ErrSurfaceLost
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			app.handleKey(ev)
			app.render()
		case *tcell.EventResize:
			app.render()
		}
	}
}

// handleKey routes a key event through the active keymap, falling back
// to typing it into the pending input.
func (app *Application) handleKey(ev *tcell.EventKey) {
	app.metrics.RecordKey()

	if chord, ok := ui.ChordFromEvent(ev); ok {
		if actionName, bound := app.workspace.Keymap().Lookup(chord); bound {
			app.dispatchAction(dispatch.NewAction(actionName))
			return
		}
	}

	switch {
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0:
		app.workspace.Type(ev.Rune())
	case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
		app.workspace.Erase()
	}
}

// dispatchAction runs one action and folds its result into the
// counters and the status line.
func (app *Application) dispatchAction(action dispatch.Action) {
	timer := StartTimer()
	result := app.dispatcher.Dispatch(action)
	app.metrics.RecordDispatch(timer.Elapsed())

	switch {
	case result.Status == dispatch.StatusCancelled:
		app.metrics.RecordCancel()
	case result.IsError():
		app.metrics.RecordError()
		app.logger.Warn("%s: %v", action.Name, result.Error)
	case result.IsOK() && len(result.Edits) > 0:
		app.metrics.RecordInsert()
	}

	switch {
	case result.Message != "":
		app.setStatus(result.Message)
	case result.IsError() && result.Error != nil:
		app.setStatus(result.Error.Error())
	case result.Status == dispatch.StatusCancelled:
		app.setStatus("cancelled")
	}
}
