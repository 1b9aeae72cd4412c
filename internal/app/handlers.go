package app

import (
	"fmt"
	"strings"

	"github.com/histkit/recall/internal/dispatch"
	"github.com/histkit/recall/internal/editor"
)

// Action names handled by the host itself.
const (
	ActionQuit          = "host.quit"          // Ctrl+q - exit the host
	ActionFocusShell    = "host.focusShell"    // F2 - focus the shell context
	ActionFocusREPL     = "host.focusRepl"     // F3 - focus the repl context
	ActionFocusTerminal = "host.focusTerminal" // F4 - focus the terminal context
	ActionOpenPrompt    = "host.openPrompt"    // F5 - open the command prompt
	ActionCommit        = "host.commit"        // Enter - commit the pending line or prompt
	ActionCancelPrompt  = "host.cancelPrompt"  // Escape - dismiss the open prompt
	ActionStatus        = "host.status"        // Meta+s - report context and counters
	ActionFocus         = "host.focus"         // prompt command - focus the named context
	ActionEcho          = "host.echo"          // prompt command - repeat its arguments
)

// commandLabel is shown while the host command prompt is open.
const commandLabel = ": "

// hostHandler serves the host namespace: context focus, the command
// prompt, line commits and shutdown.
type hostHandler struct {
	app *Application
}

// Namespace returns the action namespace this handler serves.
func (h *hostHandler) Namespace() string {
	return "host"
}

// CanHandle reports whether the action belongs to this handler.
func (h *hostHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionQuit, ActionFocusShell, ActionFocusREPL, ActionFocusTerminal,
		ActionOpenPrompt, ActionCommit, ActionCancelPrompt, ActionStatus,
		ActionFocus, ActionEcho:
		return true
	}
	return false
}

// HandleAction executes a host action.
func (h *hostHandler) HandleAction(action dispatch.Action, ctx *dispatch.Context) dispatch.Result {
	switch action.Name {
	case ActionQuit:
		return h.quit()
	case ActionFocusShell:
		return h.focusKind(editor.KindShell)
	case ActionFocusREPL:
		return h.focusKind(editor.KindREPL)
	case ActionFocusTerminal:
		return h.focusKind(editor.KindTerminal)
	case ActionOpenPrompt:
		return h.openPrompt()
	case ActionCommit:
		return h.commit()
	case ActionCancelPrompt:
		return h.cancelPrompt()
	case ActionStatus:
		return h.status()
	case ActionFocus:
		return h.focus(action.Args)
	case ActionEcho:
		return dispatch.SuccessWithMessage(strings.Join(action.Args, " "))
	default:
		return dispatch.Errorf("unknown host action: %s", action.Name)
	}
}

// quit asks the event loop to exit after the current event.
func (h *hostHandler) quit() dispatch.Result {
	h.app.requestQuit()
	return dispatch.Success()
}

// focusKind switches the workspace to the given context.
func (h *hostHandler) focusKind(kind editor.Kind) dispatch.Result {
	if h.app.workspace.PromptOpen() {
		return dispatch.NoOpWithMessage("prompt open")
	}
	h.app.workspace.Activate(kind)
	return dispatch.Success()
}

// focus switches to the context named by the single argument. Unlike
// the fixed focus actions it is invoked from the command prompt, so
// it reports where it went.
func (h *hostHandler) focus(args []string) dispatch.Result {
	if len(args) != 1 {
		return dispatch.Errorf("focus wants one context name")
	}
	kind, ok := editor.KindFromName(args[0])
	if !ok {
		return dispatch.Errorf("unknown context %q", args[0])
	}
	if kind == editor.KindPrompt || kind == editor.KindNone {
		return dispatch.Errorf("cannot focus %s directly", kind)
	}
	h.app.workspace.Activate(kind)
	return dispatch.SuccessWithMessage("focus " + kind.String())
}

// openPrompt starts a host command prompt session.
func (h *hostHandler) openPrompt() dispatch.Result {
	if h.app.workspace.PromptOpen() {
		return dispatch.NoOpWithMessage("prompt already open")
	}
	h.app.workspace.OpenPrompt(commandLabel)
	h.app.metrics.RecordPrompt()
	return dispatch.Success()
}

// commit finishes the pending input. With a prompt open the committed
// line runs as a command; otherwise the active buffer's line moves to
// its history store.
func (h *hostHandler) commit() dispatch.Result {
	ws := h.app.workspace
	if ws.PromptOpen() {
		input := ws.CommitPrompt()
		if strings.TrimSpace(input) == "" {
			return dispatch.NoOp()
		}
		return h.runCommand(input)
	}

	line, err := ws.CommitLine()
	if err != nil {
		return dispatch.Error(err)
	}
	if line == "" {
		return dispatch.NoOp()
	}
	return dispatch.Success()
}

// runCommand parses a committed prompt line and dispatches it. A bare
// command name gets the host namespace; arguments make the action
// complex, so the dispatcher records it for later repetition.
func (h *hostHandler) runCommand(input string) dispatch.Result {
	fields := strings.Fields(input)
	name := fields[0]
	if !strings.Contains(name, ".") {
		name = "host." + name
	}
	return h.app.dispatcher.Dispatch(dispatch.NewActionWithArgs(name, fields[1:]...))
}

// cancelPrompt dismisses the open prompt, discarding its input.
func (h *hostHandler) cancelPrompt() dispatch.Result {
	if !h.app.workspace.PromptOpen() {
		return dispatch.NoOp()
	}
	h.app.workspace.CancelPrompt()
	return dispatch.Cancelled()
}

// status reports the active context and the host counters.
func (h *hostHandler) status() dispatch.Result {
	ws := h.app.workspace
	snap := h.app.metrics.Snapshot()
	msg := fmt.Sprintf("%s: %d stored, %d inserted, %d dispatched",
		ws.ActiveKind(), ws.StoreDepth(), snap.InsertCount, snap.DispatchCount)
	return dispatch.SuccessWithMessage(msg)
}
