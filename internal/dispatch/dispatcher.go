package dispatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/histkit/recall/internal/editor"
	"github.com/histkit/recall/internal/prompt"
)

// Dispatch errors
var (
	ErrNoHandler  = errors.New("no handler for action")
	ErrNilHandler = errors.New("cannot register nil handler")
)

// Handler processes the actions of one namespace.
type Handler interface {
	// Namespace returns the action-name prefix this handler owns.
	Namespace() string

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// HandleAction executes the action and returns a result.
	HandleAction(action Action, ctx *Context) Result
}

// defaultLogSize bounds the complex-command record when no size is
// configured.
const defaultLogSize = 100

// Config holds dispatcher options.
type Config struct {
	// LogSize caps the complex-command record. Zero or negative
	// selects the default.
	LogSize int
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() Config {
	return Config{LogSize: defaultLogSize}
}

// commandLog records executed complex commands most recent first. Its
// stringified view backs CommandSource.
type commandLog struct {
	mu      sync.Mutex
	actions []Action
	cap     int
}

func newCommandLog(capacity int) *commandLog {
	if capacity <= 0 {
		capacity = defaultLogSize
	}
	return &commandLog{cap: capacity}
}

func (l *commandLog) record(a Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.actions = append([]Action{a}, l.actions...)
	if len(l.actions) > l.cap {
		l.actions = l.actions[:l.cap]
	}
}

func (l *commandLog) head() (Action, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.actions) == 0 {
		return Action{}, false
	}
	return l.actions[0], true
}

// Items implements CommandSource.
func (l *commandLog) Items() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]string, len(l.actions))
	for i, a := range l.actions {
		items[i] = a.String()
	}
	return items
}

// Dispatcher routes actions to namespace handlers. It also maintains
// what handlers observe about action history: the editing context's
// LastAction and the complex-command record. The "command" namespace
// is handled by the dispatcher itself.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler

	editorCtx *editor.Context
	stores    StoreIndex
	prompts   PromptStack
	selector  prompt.Selector

	log *commandLog
}

// New creates a dispatcher with an empty handler table.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		log:      newCommandLog(config.LogSize),
	}
}

// NewWithDefaults creates a dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Register adds a handler for its namespace, replacing any previous
// handler registered there.
func (d *Dispatcher) Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	ns := h.Namespace()
	if ns == "" {
		return fmt.Errorf("handler namespace must not be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[ns] = h
	return nil
}

// SetEditor sets the editing context actions apply to.
func (d *Dispatcher) SetEditor(ed *editor.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editorCtx = ed
}

// Editor returns the current editing context.
func (d *Dispatcher) Editor() *editor.Context {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.editorCtx
}

// SetStores sets the history store index.
func (d *Dispatcher) SetStores(s StoreIndex) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stores = s
}

// SetPrompts sets the prompt session stack.
func (d *Dispatcher) SetPrompts(p PromptStack) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prompts = p
}

// SetSelector sets the completion facility.
func (d *Dispatcher) SetSelector(s prompt.Selector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selector = s
}

// Commands exposes the complex-command record.
func (d *Dispatcher) Commands() CommandSource {
	return d.log
}

// Dispatch executes an action synchronously and returns its result.
// After the handler runs, the editing context's LastAction becomes
// the action name, and complex actions are appended to the command
// record. The repeat action never enters the record, whatever its
// arguments; the command it repeats is re-recorded by its own
// dispatch.
func (d *Dispatcher) Dispatch(action Action) Result {
	ctx := d.buildContext()

	var result Result
	if action.Name == ActionRepeatComplex {
		result = d.repeatComplex()
	} else {
		h := d.route(action)
		if h == nil {
			return Errorf("%w: %s", ErrNoHandler, action.Name)
		}
		result = h.HandleAction(action, ctx)
	}

	if ctx.Editor != nil {
		ctx.Editor.LastAction = action.Name
	}
	if action.IsComplex() && action.Name != ActionRepeatComplex {
		d.log.record(action)
	}

	return result
}

// repeatComplex re-runs the most recently recorded complex command.
func (d *Dispatcher) repeatComplex() Result {
	head, ok := d.log.head()
	if !ok {
		return NoOpWithMessage("no complex command to repeat")
	}
	return d.Dispatch(head)
}

func (d *Dispatcher) route(action Action) Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	h, ok := d.handlers[action.Namespace()]
	if !ok || !h.CanHandle(action.Name) {
		return nil
	}
	return h
}

func (d *Dispatcher) buildContext() *Context {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := NewContext()
	ctx.Editor = d.editorCtx
	ctx.Stores = d.stores
	ctx.Prompts = d.prompts
	ctx.Commands = d.log
	ctx.Selector = d.selector
	return ctx
}
