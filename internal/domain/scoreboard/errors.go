package scoreboard

import "errors"

// Sentinel error kinds for scoreboard errors.
var (
	ErrScoreboardNotStarted = errors.New("scoreboard not started")
	ErrRotationUnavailable  = errors.New("rotation needs three-team mode")
	ErrUnknownSide          = errors.New("unknown side")
)
