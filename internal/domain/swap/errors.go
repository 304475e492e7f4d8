package swap

import "errors"

// Sentinel error kinds for swap errors.
var (
	ErrSwapTargetNotFound = errors.New("swap target not found in team")
	ErrNoAllocation       = errors.New("no allocation to swap within")
)
