// Package dispatch routes named actions to handlers and tracks the
// action history the host exposes to them.
package dispatch

import "strings"

// Action names handled by the dispatcher itself.
const (
	ActionRepeatComplex = "command.repeatComplex" // re-run the last complex command
)

// Action is a named operation, optionally with arguments. Actions
// carrying arguments are "complex": the dispatcher records them so
// they can be repeated later.
type Action struct {
	Name string
	Args []string
}

// NewAction creates an action with no arguments.
func NewAction(name string) Action {
	return Action{Name: name}
}

// NewActionWithArgs creates an action with arguments.
func NewActionWithArgs(name string, args ...string) Action {
	return Action{Name: name, Args: args}
}

// Namespace returns the portion of the name before the first dot, or
// the whole name if it has none.
func (a Action) Namespace() string {
	if i := strings.IndexByte(a.Name, '.'); i >= 0 {
		return a.Name[:i]
	}
	return a.Name
}

// IsComplex reports whether the action carries arguments.
func (a Action) IsComplex() bool {
	return len(a.Args) > 0
}

// String renders the action as "name arg1 arg2 ...".
func (a Action) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	return a.Name + " " + strings.Join(a.Args, " ")
}
