// Package feature tracks which host features are loaded and lets
// callers defer work until a feature becomes available.
package feature

import "sync"

// Callback runs when a feature becomes available or a new instance of
// it is created. A returned error goes to the registry's reporter;
// registry state is unaffected.
type Callback func() error

// Reporter receives errors returned by callbacks.
type Reporter func(feature string, err error)

// Subscription is an active per-instance hook registration.
type Subscription struct {
	id       uint64
	feature  string
	registry *Registry
}

// Unsubscribe removes the hook.
func (s *Subscription) Unsubscribe() {
	if s.registry != nil {
		s.registry.unsubscribe(s.feature, s.id)
	}
}

// Registry tracks feature availability. Callbacks registered with
// OnAvailable run once, either immediately when the feature is
// already available or when Provide is later called. Hooks registered
// with OnInstance run on every NewInstance of the feature.
type Registry struct {
	mu        sync.Mutex
	available map[string]bool
	pending   map[string][]Callback
	instance  map[string]map[uint64]Callback
	nextID    uint64
	reporter  Reporter
}

// NewRegistry creates an empty feature registry.
func NewRegistry() *Registry {
	return &Registry{
		available: make(map[string]bool),
		pending:   make(map[string][]Callback),
		instance:  make(map[string]map[uint64]Callback),
		reporter:  func(string, error) {},
	}
}

// SetReporter installs the error reporter. A nil reporter discards
// errors.
func (r *Registry) SetReporter(fn Reporter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		fn = func(string, error) {}
	}
	r.reporter = fn
}

// Available reports whether the feature has been provided.
func (r *Registry) Available(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.available[name]
}

// Provide marks the feature available and runs any callbacks queued
// for it. Providing an already-available feature is a no-op.
func (r *Registry) Provide(name string) {
	r.mu.Lock()
	if r.available[name] {
		r.mu.Unlock()
		return
	}
	r.available[name] = true
	queued := r.pending[name]
	delete(r.pending, name)
	reporter := r.reporter
	r.mu.Unlock()

	// Run outside the lock; callbacks may register further hooks.
	for _, cb := range queued {
		if err := cb(); err != nil {
			reporter(name, err)
		}
	}
}

// OnAvailable runs cb once the feature is available: immediately if it
// already is, otherwise when Provide is called.
func (r *Registry) OnAvailable(name string, cb Callback) {
	if cb == nil {
		return
	}

	r.mu.Lock()
	if !r.available[name] {
		r.pending[name] = append(r.pending[name], cb)
		r.mu.Unlock()
		return
	}
	reporter := r.reporter
	r.mu.Unlock()

	if err := cb(); err != nil {
		reporter(name, err)
	}
}

// OnInstance registers a hook that runs on every NewInstance of the
// feature.
func (r *Registry) OnInstance(name string, cb Callback) *Subscription {
	if cb == nil {
		return &Subscription{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	if r.instance[name] == nil {
		r.instance[name] = make(map[uint64]Callback)
	}
	r.instance[name][id] = cb

	return &Subscription{id: id, feature: name, registry: r}
}

// NewInstance announces a new instance of the feature. The feature is
// provided first if it was not already, then instance hooks fire.
func (r *Registry) NewInstance(name string) {
	r.Provide(name)

	r.mu.Lock()
	hooks := make([]Callback, 0, len(r.instance[name]))
	for _, cb := range r.instance[name] {
		hooks = append(hooks, cb)
	}
	reporter := r.reporter
	r.mu.Unlock()

	for _, cb := range hooks {
		if err := cb(); err != nil {
			reporter(name, err)
		}
	}
}

func (r *Registry) unsubscribe(name string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hooks, ok := r.instance[name]; ok {
		delete(hooks, id)
		if len(hooks) == 0 {
			delete(r.instance, name)
		}
	}
}
