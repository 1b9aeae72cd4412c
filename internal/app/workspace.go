package app

import (
	"sync"
	"unicode/utf8"

	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/dispatch"
	"github.com/histkit/recall/internal/editor"
	"github.com/histkit/recall/internal/feature"
	"github.com/histkit/recall/internal/keymap"
	"github.com/histkit/recall/internal/prompt"
	"github.com/histkit/recall/internal/ring"
	"github.com/histkit/recall/internal/text"
)

// baseKeymap is the root of every context keymap chain.
const baseKeymap = "base"

// Workspace manages the editing contexts the host offers and tracks
// which one has focus. Contexts are created lazily; creating one binds
// its history store, defines its keymap under the base map and
// announces its feature, which is what fires deferred keybinding
// installs.
type Workspace struct {
	mu sync.RWMutex

	cfg      *config.Config
	stores   *ring.Registry
	keymaps  *keymap.Registry
	features *feature.Registry
	prompts  *prompt.Manager
	disp     *dispatch.Dispatcher
	logger   *Logger

	contexts map[editor.Kind]*editor.Context
	maps     map[editor.Kind]string
	active   editor.Kind

	// promptLog holds past prompt submissions; new sessions start from
	// its contents. It is deliberately not in the store registry since
	// prompt history travels with the session.
	promptLog *ring.Ring

	// promptReturn is the focus to restore when the last prompt closes.
	promptReturn editor.Kind
}

func newWorkspace(app *Application) *Workspace {
	return &Workspace{
		cfg:          app.cfg,
		stores:       app.stores,
		keymaps:      app.keymaps,
		features:     app.features,
		prompts:      app.prompts,
		disp:         app.dispatcher,
		logger:       app.logger.WithComponent("workspace"),
		contexts:     make(map[editor.Kind]*editor.Context),
		maps:         make(map[editor.Kind]string),
		promptLog:    ring.NewRing(app.cfg.HistorySize),
		promptReturn: editor.KindShell,
	}
}

// Activate focuses the context of the given kind, creating it on first
// use, and points the dispatcher at it.
func (w *Workspace) Activate(kind editor.Kind) *editor.Context {
	w.mu.Lock()
	ctx, ok := w.contexts[kind]
	if !ok {
		ctx = editor.NewContext(kind)
		if kind == editor.KindTerminal {
			// Terminal output is process-owned; only privileged
			// inserts may write to it.
			ctx.Buf.SetReadOnly(true)
		}
		w.contexts[kind] = ctx
	}
	w.active = kind
	w.mu.Unlock()

	if !ok {
		w.prepare(kind)
	}

	w.disp.SetEditor(ctx)
	return ctx
}

// prepare wires a freshly created context into the host: history
// store, keymap chain and feature announcement.
func (w *Workspace) prepare(kind editor.Kind) {
	if store := w.storeFor(kind); store != "" && !w.stores.Bound(store) {
		w.stores.Bind(store, ring.NewRing(w.cfg.HistorySize))
	}

	spec, ok := w.specFor(kind)
	if !ok {
		w.mu.Lock()
		w.maps[kind] = baseKeymap
		w.mu.Unlock()
		return
	}

	if _, err := w.keymaps.Define(spec.Keymap, baseKeymap); err != nil {
		w.logger.Warn("defining keymap %s: %v", spec.Keymap, err)
	}
	w.mu.Lock()
	w.maps[kind] = spec.Keymap
	w.mu.Unlock()

	if w.cfg.LegacyInstanceHooks {
		w.features.NewInstance(spec.Feature)
	} else {
		w.features.Provide(spec.Feature)
	}
}

// storeFor returns the configured store name for a kind, or "".
func (w *Workspace) storeFor(kind editor.Kind) string {
	for _, rb := range w.cfg.Rings {
		if rb.Kind == kind.String() {
			return rb.Store
		}
	}
	return ""
}

// specFor returns the keymap spec whose feature names the kind.
func (w *Workspace) specFor(kind editor.Kind) (config.KeymapSpec, bool) {
	for _, ks := range w.cfg.Keymaps {
		if ks.Feature == kind.String() {
			return ks, true
		}
	}
	return config.KeymapSpec{}, false
}

// Active returns the focused context, or nil before any activation.
func (w *Workspace) Active() *editor.Context {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.contexts[w.active]
}

// ActiveKind returns the focused context kind.
func (w *Workspace) ActiveKind() editor.Kind {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// Keymap returns the keymap chain serving the focused context. Falls
// back to the base map when the context has none of its own.
func (w *Workspace) Keymap() *keymap.Keymap {
	w.mu.RLock()
	name, ok := w.maps[w.active]
	w.mu.RUnlock()

	if !ok {
		name = baseKeymap
	}
	km, err := w.keymaps.Get(name)
	if err != nil {
		km, err = w.keymaps.Get(baseKeymap)
		if err != nil {
			return nil
		}
	}
	return km
}

// PromptOpen reports whether a prompt session is live.
func (w *Workspace) PromptOpen() bool {
	return w.prompts.Active() != nil
}

// OpenPrompt focuses the prompt context and pushes a session seeded
// with past submissions.
func (w *Workspace) OpenPrompt(label string) *prompt.Session {
	w.mu.Lock()
	if w.active != editor.KindPrompt {
		w.promptReturn = w.active
	}
	w.mu.Unlock()

	w.Activate(editor.KindPrompt)
	return w.prompts.Push(label, w.promptLog.Items())
}

// CommitPrompt closes the innermost session, records its input as a
// past submission and restores focus if no session remains.
func (w *Workspace) CommitPrompt() string {
	s := w.prompts.Pop()
	if s == nil {
		return ""
	}

	input := s.Input().Text()
	if input != "" {
		w.promptLog.Append(input)
	}
	w.restoreFocus()
	return input
}

// CancelPrompt closes the innermost session without recording it.
func (w *Workspace) CancelPrompt() {
	if s := w.prompts.Pop(); s != nil {
		w.restoreFocus()
	}
}

func (w *Workspace) restoreFocus() {
	if w.prompts.Depth() > 0 {
		return
	}
	w.mu.RLock()
	ret := w.promptReturn
	w.mu.RUnlock()
	w.Activate(ret)
}

// CommitLine records the focused context's buffer in its history store
// and clears it. Contexts without a writable buffer or a store keep
// their content.
func (w *Workspace) CommitLine() (string, error) {
	ctx := w.Active()
	if ctx == nil {
		return "", nil
	}

	line := ctx.Buf.Text()
	if line == "" {
		return "", nil
	}

	if store := w.storeFor(ctx.Kind); store != "" {
		if r, ok := w.stores.Ring(store); ok {
			r.Append(line)
		}
	}

	if err := ctx.Buf.Clear(); err != nil {
		return "", err
	}
	ctx.SetCursor(0)
	return line, nil
}

// Type feeds one typed rune into the focused input: the live prompt
// session if one is open, the context buffer otherwise.
func (w *Workspace) Type(r rune) {
	if s := w.prompts.Active(); s != nil {
		buf := s.Input()
		if _, err := buf.Insert(buf.Len(), string(r)); err != nil {
			w.logger.Debug("prompt input rejected: %v", err)
		}
		return
	}

	ctx := w.Active()
	if ctx == nil {
		return
	}
	if err := ctx.InsertAtCursor(string(r), false); err != nil {
		w.logger.Debug("typing rejected: %v", err)
	}
}

// Erase removes the rune before the focused input position.
func (w *Workspace) Erase() {
	if s := w.prompts.Active(); s != nil {
		buf := s.Input()
		content := buf.Text()
		if content == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(content)
		if err := buf.Delete(buf.Len()-text.ByteOffset(size), buf.Len()); err != nil {
			w.logger.Debug("prompt erase rejected: %v", err)
		}
		return
	}

	ctx := w.Active()
	if ctx == nil {
		return
	}
	if err := ctx.DeleteBack(); err != nil {
		w.logger.Debug("erase rejected: %v", err)
	}
}

// StoreDepth returns the number of history items behind the focused
// context.
func (w *Workspace) StoreDepth() int {
	ctx := w.Active()
	if ctx == nil {
		return 0
	}
	if ctx.Kind == editor.KindPrompt {
		return w.promptLog.Len()
	}
	store := w.storeFor(ctx.Kind)
	if store == "" {
		return 0
	}
	return len(w.stores.Items(store))
}

// Line returns the input row's label, pending text and cursor byte
// offset within the text.
func (w *Workspace) Line() (label, pending string, at int) {
	if s := w.prompts.Active(); s != nil {
		input := s.Input().Text()
		return s.Label(), input, len(input)
	}

	ctx := w.Active()
	if ctx == nil {
		return "> ", "", 0
	}
	return "> ", ctx.Buf.Text(), int(ctx.Cursor)
}

// Transcript returns up to n stored items behind the focused context,
// oldest first.
func (w *Workspace) Transcript(n int) []string {
	if n <= 0 {
		return nil
	}

	ctx := w.Active()
	if ctx == nil {
		return nil
	}

	var items []string
	if ctx.Kind == editor.KindPrompt {
		items = w.promptLog.Recent(n)
	} else if store := w.storeFor(ctx.Kind); store != "" {
		items = w.stores.Items(store)
		if len(items) > n {
			items = items[:n]
		}
	}

	// Stores list most recent first; the transcript reads downward.
	out := make([]string, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
