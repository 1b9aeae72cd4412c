// Package app wires the recall host together: configuration, the init
// script, history stores, keymaps, features, the dispatcher and the
// terminal event loop.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/dispatch"
	"github.com/histkit/recall/internal/editor"
	"github.com/histkit/recall/internal/feature"
	"github.com/histkit/recall/internal/key"
	"github.com/histkit/recall/internal/keymap"
	"github.com/histkit/recall/internal/prompt"
	"github.com/histkit/recall/internal/recall"
	"github.com/histkit/recall/internal/ring"
	"github.com/histkit/recall/internal/script"
	"github.com/histkit/recall/internal/ui"
)

// selectorRows caps the candidate rows the picker draws.
const selectorRows = 8

// Application is the central coordinator for the recall host. It owns
// component lifecycles, wiring, and the main event loop.
type Application struct {
	mu sync.RWMutex

	cfg     *config.Config
	logger  *Logger
	metrics *Metrics

	script     *script.Host
	stores     *ring.Registry
	keymaps    *keymap.Registry
	features   *feature.Registry
	prompts    *prompt.Manager
	dispatcher *dispatch.Dispatcher
	workspace  *Workspace

	surface  ui.Surface
	selector *ui.ListSelector

	statusMsg string

	running  atomic.Bool
	done     chan struct{}
	quitOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty or missing
	// falls back to the defaults.
	ConfigPath string

	// ScriptPath overrides the configured Lua init script.
	ScriptPath string

	// LogLevel overrides the configured logging verbosity.
	LogLevel string

	// Debug forces debug logging.
	Debug bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Logging
	level := cfg.LogLevel
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(level),
		Prefix: "recall",
	})
	if app.opts.Debug {
		app.logger.SetLevel(LogLevelDebug)
	}
	SetLogger(app.logger)

	// 3. Init script. The script mutates the configuration, so the
	// final shape is validated after it runs.
	app.script = script.New(cfg)
	scriptPath := cfg.Script
	if app.opts.ScriptPath != "" {
		scriptPath = app.opts.ScriptPath
	}
	if scriptPath != "" {
		if err := app.script.RunFile(scriptPath); err != nil {
			return &InitError{Component: "script", Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 4. History stores, with any script-declared seeds
	app.stores = ring.NewRegistry()
	app.script.ApplySeeds(app.stores, cfg.HistorySize)
	app.seedDemo()

	// 5. Keymaps
	app.keymaps = keymap.NewRegistry()
	if err := app.bindDefaults(); err != nil {
		return &InitError{Component: "keymaps", Err: err}
	}

	// 6. Feature registry; install failures go to the log
	app.features = feature.NewRegistry()
	installLog := app.logger.WithComponent("install")
	app.features.SetReporter(func(feat string, err error) {
		installLog.Warn("feature %s: %v", feat, err)
	})

	// 7. Prompt sessions
	app.prompts = prompt.NewManager()

	// 8. Dispatcher and handlers
	app.dispatcher = dispatch.New(dispatch.Config{LogSize: cfg.HistorySize})
	app.dispatcher.SetStores(app.stores)
	app.dispatcher.SetPrompts(app.prompts)
	if err := app.dispatcher.Register(recall.NewHandler(cfg)); err != nil {
		return &InitError{Component: "dispatcher", Err: err}
	}
	if err := app.dispatcher.Register(&hostHandler{app: app}); err != nil {
		return &InitError{Component: "dispatcher", Err: err}
	}

	// 9. Insertion keybinding, installed as features load
	if err := recall.Setup(cfg, app.keymaps, app.features); err != nil {
		return &InitError{Component: "recall", Err: err}
	}

	// 10. Workspace with the shell context focused
	app.workspace = newWorkspace(app)
	app.workspace.Activate(editor.KindShell)

	return nil
}

// bindDefaults creates the base keymap and its built-in bindings.
func (app *Application) bindDefaults() error {
	base, err := app.keymaps.Define(baseKeymap, "")
	if err != nil {
		return err
	}

	base.Bind(key.MustParse("Ctrl+q"), ActionQuit)
	base.Bind(key.MustParse("F2"), ActionFocusShell)
	base.Bind(key.MustParse("F3"), ActionFocusREPL)
	base.Bind(key.MustParse("F4"), ActionFocusTerminal)
	base.Bind(key.MustParse("F5"), ActionOpenPrompt)
	base.Bind(key.MustParse("F6"), dispatch.ActionRepeatComplex)
	base.Bind(key.MustParse("Enter"), ActionCommit)
	base.Bind(key.MustParse("Escape"), ActionCancelPrompt)
	base.Bind(key.MustParse(recall.CompanionChord), ActionStatus)
	return nil
}

// demoTerminalLines stands in for process output. The terminal
// context rejects typing, so without a script seed its store would
// stay empty.
var demoTerminalLines = []string{
	"$ make build",
	"go build ./...",
	"listen tcp :8080: address already in use",
}

// seedDemo fills the terminal store with sample output when the init
// script did not seed it.
func (app *Application) seedDemo() {
	for _, rb := range app.cfg.Rings {
		if rb.Kind != editor.KindTerminal.String() || app.stores.Bound(rb.Store) {
			continue
		}
		r := ring.NewRing(app.cfg.HistorySize)
		for _, line := range demoTerminalLines {
			r.Append(line)
		}
		app.stores.Bind(rb.Store, r)
	}
}

// SetSurface sets the display surface. Must be called before Run.
func (app *Application) SetSurface(s ui.Surface) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.surface = s
	return nil
}

// Run starts the application main loop. Blocks until quit is requested
// or the surface is lost.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	surface := app.surface
	app.mu.Unlock()
	if surface == nil {
		return ErrNoSurface
	}

	app.selector = ui.NewListSelector(surface, selectorRows)
	app.dispatcher.SetSelector(app.selector)

	app.logger.Info("host ready, %s inserts a previous input", app.cfg.Binding)
	return app.eventLoop()
}

// requestQuit makes the event loop exit after the current event. A
// poll that is already blocking is woken with an interrupt event.
func (app *Application) requestQuit() {
	app.quitOnce.Do(func() {
		close(app.done)
		app.mu.RLock()
		surface := app.surface
		app.mu.RUnlock()
		if surface != nil {
			_ = surface.PostEvent(tcell.NewEventInterrupt(nil))
		}
	})
}

// Shutdown requests loop exit and releases held resources.
func (app *Application) Shutdown() {
	app.requestQuit()
	if app.script != nil {
		app.script.Close()
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return GetLogger()
	}
	return app.logger
}

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Stores returns the history store registry.
func (app *Application) Stores() *ring.Registry {
	return app.stores
}

// Keymaps returns the keymap registry.
func (app *Application) Keymaps() *keymap.Registry {
	return app.keymaps
}

// Features returns the feature registry.
func (app *Application) Features() *feature.Registry {
	return app.features
}

// Prompts returns the prompt session stack.
func (app *Application) Prompts() *prompt.Manager {
	return app.prompts
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatch.Dispatcher {
	return app.dispatcher
}

// Workspace returns the editing context manager.
func (app *Application) Workspace() *Workspace {
	return app.workspace
}

// setStatus replaces the status line message.
func (app *Application) setStatus(msg string) {
	app.mu.Lock()
	app.statusMsg = msg
	app.mu.Unlock()
}

// Status returns the current status line message.
func (app *Application) Status() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.statusMsg
}

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
