package dispatch

import (
	"github.com/histkit/recall/internal/editor"
	"github.com/histkit/recall/internal/prompt"
)

// StoreIndex provides access to named input-history stores.
type StoreIndex interface {
	// Bound reports whether a store exists under the name.
	Bound(name string) bool

	// Items returns the store contents most recent first, or nil for
	// an unbound name.
	Items(name string) []string
}

// PromptStack exposes the host's live prompt sessions.
type PromptStack interface {
	// Active returns the innermost live session, or nil when no
	// prompt is open.
	Active() *prompt.Session
}

// CommandSource lists previously executed complex commands,
// stringified, most recent first.
type CommandSource interface {
	Items() []string
}

// Context carries the host state a handler may touch while executing
// an action.
type Context struct {
	// Editor is the editing context the action applies to.
	Editor *editor.Context

	// Stores indexes the named input-history stores.
	Stores StoreIndex

	// Prompts is the live prompt session stack.
	Prompts PromptStack

	// Commands is the complex-command record.
	Commands CommandSource

	// Selector is the interactive completion facility.
	Selector prompt.Selector

	// Data holds cross-handler state for this dispatch.
	Data map[string]any
}

// NewContext creates an empty execution context.
func NewContext() *Context {
	return &Context{
		Data: make(map[string]any),
	}
}

// WithEditor sets the editing context and returns the context.
func (c *Context) WithEditor(ed *editor.Context) *Context {
	c.Editor = ed
	return c
}

// WithStores sets the store index and returns the context.
func (c *Context) WithStores(s StoreIndex) *Context {
	c.Stores = s
	return c
}

// WithPrompts sets the prompt stack and returns the context.
func (c *Context) WithPrompts(p PromptStack) *Context {
	c.Prompts = p
	return c
}

// WithCommands sets the command record and returns the context.
func (c *Context) WithCommands(cs CommandSource) *Context {
	c.Commands = cs
	return c
}

// WithSelector sets the completion facility and returns the context.
func (c *Context) WithSelector(s prompt.Selector) *Context {
	c.Selector = s
	return c
}

// ActivePrompt returns the innermost live prompt session, or nil.
func (c *Context) ActivePrompt() *prompt.Session {
	if c.Prompts == nil {
		return nil
	}
	return c.Prompts.Active()
}
