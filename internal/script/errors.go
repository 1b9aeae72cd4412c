package script

import "errors"

// Errors returned by script execution.
var (
	ErrHostClosed   = errors.New("script host is closed")
	ErrScriptFailed = errors.New("script failed")
	ErrScriptPanic  = errors.New("script panicked")
)
