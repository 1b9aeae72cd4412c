package recall

import (
	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/dispatch"
	"github.com/histkit/recall/internal/prompt"
)

// Action names handled by this package.
const (
	ActionInsertItem = "recall.insertItem" // Meta+r - insert a previous input at the cursor
)

// PromptLabel is the label the selection facility shows while the
// user picks an entry.
const PromptLabel = "Item: "

// Handler inserts a previously entered input chosen through the
// selection facility.
type Handler struct {
	cfg *config.Config
}

// NewHandler creates a recall handler using the given configuration
// to resolve ring bindings.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// Namespace returns the action namespace this handler serves.
func (h *Handler) Namespace() string {
	return "recall"
}

// CanHandle reports whether the action belongs to this handler.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsertItem:
		return true
	}
	return false
}

// HandleAction executes a recall action.
func (h *Handler) HandleAction(action dispatch.Action, ctx *dispatch.Context) dispatch.Result {
	switch action.Name {
	case ActionInsertItem:
		return h.insertItem(ctx)
	default:
		return dispatch.Errorf("unknown recall action: %s", action.Name)
	}
}

// insertItem resolves the history for the current context, lets the
// user pick an entry, and inserts it. The selection runs even when
// the resolved sequence is empty so the user sees the prompt and may
// cancel it.
func (h *Handler) insertItem(ctx *dispatch.Context) dispatch.Result {
	if ctx == nil || ctx.Selector == nil {
		return dispatch.Errorf("no selection facility available")
	}

	history := ResolveHistory(ctx, h.cfg)

	// Capture the originating prompt before the selector runs. The
	// selector may open a nested session, and the insertion target
	// is the prompt that was active at invocation.
	origin := ctx.ActivePrompt()

	choice, err := ctx.Selector.Select(prompt.Request{
		Label:        PromptLabel,
		Candidates:   NewCandidateSource(history),
		RequireMatch: true,
		AllowNested:  true,
	})
	if err != nil {
		return dispatch.Error(err)
	}

	// The originating prompt's pending input is discarded whether or
	// not a choice was made.
	if origin != nil {
		if cerr := origin.Clear(); cerr != nil {
			return dispatch.Error(cerr)
		}
	}

	if choice == "" {
		return dispatch.Cancelled()
	}

	if origin != nil {
		if _, err := origin.Input().Insert(0, choice); err != nil {
			return dispatch.Error(err)
		}
		return dispatch.Success().
			WithEdit(dispatch.Edit{Start: 0, End: 0, NewText: choice}).
			WithData("inserted", choice)
	}

	if ctx.Editor == nil {
		return dispatch.Errorf("no editing context to insert into")
	}
	at := ctx.Editor.Cursor
	if err := ctx.Editor.InsertAtCursor(choice, true); err != nil {
		return dispatch.Error(err)
	}
	return dispatch.Success().
		WithEdit(dispatch.Edit{Start: at, End: at, NewText: choice}).
		WithData("inserted", choice)
}
