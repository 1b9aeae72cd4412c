package app

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify all sentinel errors are distinct
	sentinels := []error{
		ErrQuit,
		ErrAlreadyRunning,
		ErrNotRunning,
		ErrNoSurface,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
