package prompt

// Order controls how a selector presents candidates.
type Order int

const (
	// OrderGiven pins presentation to the order the candidates were
	// supplied in. The selector may filter but must not re-sort.
	OrderGiven Order = iota

	// OrderScore lets the selector rank candidates by match quality.
	OrderScore
)

// Candidates is the completion set handed to a selector.
type Candidates struct {
	Items []string
	Order Order

	// CycleRecent permits the selector to rotate recently chosen
	// items toward the front across invocations. Leave false to keep
	// the supplied order stable.
	CycleRecent bool
}

// Request describes one interactive selection.
type Request struct {
	// Label is shown before the input area, e.g. "Item: ".
	Label string

	Candidates Candidates

	// Default is offered when the user accepts without typing.
	// Empty means no default.
	Default string

	// RequireMatch restricts acceptance to listed candidates.
	RequireMatch bool

	// AllowNested permits the selection to open while another prompt
	// session is already active.
	AllowNested bool
}

// Selector is an interactive completion facility.
//
// Select returns the chosen string. An empty string with a nil error
// means the user declined to choose; a non-nil error reports a
// facility failure, never a cancellation.
type Selector interface {
	Select(req Request) (string, error)
}

// Func adapts a function to the Selector interface.
type Func func(req Request) (string, error)

// Select calls f.
func (f Func) Select(req Request) (string, error) {
	return f(req)
}
